package twilio

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("twilio client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("twilio client: invalid response")
)
