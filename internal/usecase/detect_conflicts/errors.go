package detect_conflicts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("detect_conflicts: invalid input data")

	// ErrNoValidServices возвращается, когда ни одна из запрошенных услуг
	// не нашлась в каталоге тенанта
	ErrNoValidServices = errors.New("detect_conflicts: no valid services in request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("detect_conflicts: internal error")
)
