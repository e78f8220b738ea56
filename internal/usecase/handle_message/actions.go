package handle_message

import (
	"regexp"
	"strconv"

	"github.com/m04kA/SMC-ChatbotService/pkg/types"
)

// ActionType тип действия, закодированного в ответе модели
type ActionType string

const (
	ActionNone           ActionType = ""
	ActionBookInterval   ActionType = "book_interval"
	ActionBookService    ActionType = "book_service"
	ActionOrderProduct   ActionType = "order_product"
	ActionSelectBusiness ActionType = "select_business"
)

// Action распознанное действие из ответа модели
type Action struct {
	Type ActionType

	// book_interval
	StartTime types.TimeString
	EndTime   types.TimeString

	// book_service, order_product, select_business
	ServiceID  int64
	ProductID  int64
	BusinessID int64
	Quantity   int
}

// Формат действий фиксирован промптом: модель отвечает строкой вида
// "BOOKING: 10:00-11:00", остальной текст игнорируется
var (
	reBookInterval   = regexp.MustCompile(`BOOKING:\s*(\d{2}:\d{2})-(\d{2}:\d{2})`)
	reBookService    = regexp.MustCompile(`BOOKING:\s*(\d+):(\d{2}:\d{2})`)
	reOrderProduct   = regexp.MustCompile(`ORDER:\s*(\d+):(\d+)`)
	reSelectBusiness = regexp.MustCompile(`SELECT_BUSINESS:\s*(\d+)`)
)

// parseAction извлекает действие из ответа модели
// Возвращает Action с типом ActionNone, если действий в тексте нет.
func parseAction(aiReply string) Action {
	if m := reBookInterval.FindStringSubmatch(aiReply); m != nil {
		return Action{
			Type:      ActionBookInterval,
			StartTime: types.TimeString(m[1]),
			EndTime:   types.TimeString(m[2]),
		}
	}

	if m := reBookService.FindStringSubmatch(aiReply); m != nil {
		serviceID, _ := strconv.ParseInt(m[1], 10, 64)
		return Action{
			Type:      ActionBookService,
			ServiceID: serviceID,
			StartTime: types.TimeString(m[2]),
		}
	}

	if m := reOrderProduct.FindStringSubmatch(aiReply); m != nil {
		productID, _ := strconv.ParseInt(m[1], 10, 64)
		quantity, _ := strconv.Atoi(m[2])
		return Action{
			Type:      ActionOrderProduct,
			ProductID: productID,
			Quantity:  quantity,
		}
	}

	if m := reSelectBusiness.FindStringSubmatch(aiReply); m != nil {
		businessID, _ := strconv.ParseInt(m[1], 10, 64)
		return Action{
			Type:       ActionSelectBusiness,
			BusinessID: businessID,
		}
	}

	return Action{Type: ActionNone}
}
