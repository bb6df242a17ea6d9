package availability_matrix

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability_matrix: invalid input data")

	// ErrRangeTooWide возвращается, когда запрошенный период превышает
	// допустимый потолок поденной матрицы
	ErrRangeTooWide = errors.New("availability_matrix: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("availability_matrix: internal error")
)
