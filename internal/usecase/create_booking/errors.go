package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCustomerNotFound возвращается, когда клиент с переданным ID не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrNoValidServices возвращается, когда ни одна из запрошенных услуг
	// не нашлась в каталоге тенанта
	ErrNoValidServices = errors.New("create_booking: no valid services in request")

	// ErrConcurrentUpdate возвращается, когда сериализуемая транзакция не
	// прошла после повтора из-за конкурентного бронирования
	ErrConcurrentUpdate = errors.New("create_booking: concurrent booking in progress, please retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
