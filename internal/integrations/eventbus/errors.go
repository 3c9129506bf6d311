package eventbus

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("eventbus: failed to connect")

	// ErrDeclareQueue возвращается при ошибке объявления очереди
	ErrDeclareQueue = errors.New("eventbus: failed to declare queue")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("eventbus: failed to publish")
)
