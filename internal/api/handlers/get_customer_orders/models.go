package get_customer_orders

import (
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// OrderResponse HTTP модель заказа
type OrderResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	BusinessID    int64     `json:"businessId"`
	CustomerPhone string    `json:"customerPhone"`
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainOrders конвертирует доменные заказы в HTTP модели
func FromDomainOrders(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderResponse{
			ID:            o.ID,
			Reference:     o.Reference,
			BusinessID:    o.BusinessID,
			CustomerPhone: o.CustomerPhone,
			ProductID:     o.ProductID,
			ProductName:   o.ProductName,
			Quantity:      o.Quantity,
			Status:        string(o.Status),
			CreatedAt:     o.CreatedAt,
		}
	}
	return result
}
