package handle_message

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ChatbotService/internal/availability"
	"github.com/m04kA/SMC-ChatbotService/internal/domain"
)

// buildSystemPrompt собирает системный промпт для модели
// Контекст: выбранный бизнес, его услуги или товары и свободное время на сегодня.
// Модель отвечает клиенту текстом, а действия кодирует строками
// BOOKING / ORDER / SELECT_BUSINESS, которые разбирает parseAction.
func buildSystemPrompt(
	business *domain.Business,
	services []*domain.Service,
	products []*domain.Product,
	freeSlots string,
	directory []*domain.Business,
	date time.Time,
) string {
	var b strings.Builder

	b.WriteString("You are a WhatsApp assistant for small businesses. ")
	b.WriteString("Help customers book appointments, order products and find businesses.\n\n")

	fmt.Fprintf(&b, "Today is %s.\n\n", date.Format(domain.DateFormat))

	if business != nil {
		fmt.Fprintf(&b, "Selected business: %s (id %d), %s, %s.\n",
			business.Name, business.ID, business.Address, business.City)

		switch business.Category {
		case domain.CategoryServices:
			if len(services) > 0 {
				b.WriteString("Services:\n")
				for _, svc := range services {
					if svc.Price != nil {
						fmt.Fprintf(&b, "- id %d: %s, %d min, %.2f\n", svc.ID, svc.Name, svc.DurationMinutes, *svc.Price)
					} else {
						fmt.Fprintf(&b, "- id %d: %s, %d min\n", svc.ID, svc.Name, svc.DurationMinutes)
					}
				}
			}
			fmt.Fprintf(&b, "Free time today: %s.\n", freeSlots)
			b.WriteString("\nWhen the customer confirms a booking, reply with EXACTLY one line:\n")
			b.WriteString("BOOKING: HH:MM-HH:MM (explicit interval)\n")
			b.WriteString("or BOOKING: SERVICE_ID:HH:MM (service by id, duration is known)\n")
			b.WriteString("Only offer times from the free time list.\n")
		case domain.CategoryProducts:
			if len(products) > 0 {
				b.WriteString("Products:\n")
				for _, product := range products {
					if product.Price != nil {
						fmt.Fprintf(&b, "- id %d: %s, %.2f\n", product.ID, product.Name, *product.Price)
					} else {
						fmt.Fprintf(&b, "- id %d: %s\n", product.ID, product.Name)
					}
				}
			}
			b.WriteString("\nWhen the customer confirms an order, reply with EXACTLY one line:\n")
			b.WriteString("ORDER: PRODUCT_ID:QUANTITY\n")
		}
	} else {
		b.WriteString("No business is selected yet.\n")
		if len(directory) > 0 {
			b.WriteString("Known businesses:\n")
			for _, biz := range directory {
				fmt.Fprintf(&b, "- id %d: %s (%s), %s\n", biz.ID, biz.Name, biz.Category, biz.City)
			}
		}
		b.WriteString("\nHelp the customer pick a business. When they choose one, reply with EXACTLY one line:\n")
		b.WriteString("SELECT_BUSINESS: BUSINESS_ID\n")
	}

	b.WriteString("\nBe friendly and concise. Never invent times or ids that are not listed above.")

	return b.String()
}

// formatFreeSlotsForPrompt приводит свободное время к короткой строке для промпта
func formatFreeSlotsForPrompt(freeRanges []domain.Interval) string {
	return availability.FormatFreeSlots(freeRanges)
}
