package domain

import "time"

// BusinessCategory тип бизнеса: услуги (запись по времени) или товары (заказы)
type BusinessCategory string

const (
	CategoryServices BusinessCategory = "services"
	CategoryProducts BusinessCategory = "products"
)

// Business represents a registered small business (barbershop, market, ...)
type Business struct {
	ID             int64
	Name           string
	City           string
	Address        string
	Category       BusinessCategory
	WhatsAppNumber string // Входящий номер, на который маршрутизируется бот

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга бизнеса с длительностью, определяющей конец бронирования
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64
}

// Product товар бизнеса (для категории products)
type Product struct {
	ID         int64
	BusinessID int64
	Name       string
	Price      *float64
}
