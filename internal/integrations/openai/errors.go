package openai

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("openai client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("openai client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что OpenAI недоступен и следует ответить шаблонным сообщением
	ErrServiceDegraded = errors.New("openai unavailable: graceful degradation applied")
)
