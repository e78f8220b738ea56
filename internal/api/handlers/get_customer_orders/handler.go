package get_customer_orders

import (
	"net/http"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
)

const (
	msgMissingPhone = "телефон клиента обязателен"
)

type Handler struct {
	orderRepo OrderRepository
	logger    Logger
}

func NewHandler(orderRepo OrderRepository, logger Logger) *Handler {
	return &Handler{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Handle GET /api/v1/customers/orders
// Query params: phone (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем phone из query параметров
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.logger.Warn("GET /customers/orders - Missing customer phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	// Получаем историю заказов клиента
	orders, err := h.orderRepo.GetByCustomerPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("GET /customers/orders - Failed to get orders: phone=%s, error=%v", phone, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /customers/orders - Orders retrieved successfully: phone=%s, count=%d",
		phone, len(orders))
	handlers.RespondJSON(w, http.StatusOK, FromDomainOrders(orders))
}
