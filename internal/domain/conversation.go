package domain

import "time"

// Conversation одна пара "сообщение клиента - ответ бота"
// Журнал нужен для разбора жалоб и отладки промптов.
type Conversation struct {
	ID            int64
	BusinessID    *int64 // nil, пока клиент не выбрал бизнес
	CustomerPhone string
	Message       string
	Reply         string
	Date          time.Time

	CreatedAt time.Time
}
