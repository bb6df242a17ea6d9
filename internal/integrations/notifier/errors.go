package notifier

import "errors"

var (
	// ErrMarshalEvent возвращается при ошибке сериализации события
	ErrMarshalEvent = errors.New("notifier: failed to marshal event")

	// ErrPublishEvent возвращается при ошибке публикации события в Redis
	ErrPublishEvent = errors.New("notifier: failed to publish event")
)
