package domain

import "time"

// OrderStatus represents the status of a product order
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order заказ товара, оформленный через бота
type Order struct {
	ID            int64
	Reference     string // UUID, выдается клиенту как номер заказа
	BusinessID    int64
	CustomerPhone string
	ProductID     int64
	Quantity      int
	Status        OrderStatus

	// Denormalized data for history
	ProductName string

	CreatedAt time.Time
}
