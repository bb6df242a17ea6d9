package quote_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("quote_price: service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
