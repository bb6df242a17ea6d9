package conflictdetect

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках детектора конфликтов
	ErrInternal = errors.New("conflictdetect: internal error")
)
