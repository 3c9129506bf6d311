package servicecatalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("servicecatalog client: service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("servicecatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("servicecatalog client: invalid response")

	// ErrUnavailable возвращается, когда каталог не отвечает
	ErrUnavailable = errors.New("servicecatalog client: catalog unavailable")
)
