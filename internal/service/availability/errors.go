package availability

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках расчета доступности
	ErrInternal = errors.New("availability: internal error")
)
