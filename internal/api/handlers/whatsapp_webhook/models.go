package whatsapp_webhook

import (
	"encoding/xml"
	"net/http"
	"strings"

	handleMessage "github.com/m04kA/SMC-ChatbotService/internal/usecase/handle_message"
)

const whatsappPrefix = "whatsapp:"

// twimlResponse TwiML ответ для Twilio
// https://www.twilio.com/docs/messaging/twiml
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// ToUseCaseRequest формирует запрос use case из form-параметров вебхука Twilio
// Префикс whatsapp: срезается, номера передаются дальше в формате E.164
func ToUseCaseRequest(r *http.Request) *handleMessage.Request {
	return &handleMessage.Request{
		From: strings.TrimPrefix(r.FormValue("From"), whatsappPrefix),
		To:   strings.TrimPrefix(r.FormValue("To"), whatsappPrefix),
		Body: strings.TrimSpace(r.FormValue("Body")),
	}
}

// MarshalTwiML сериализует текст ответа в TwiML документ
// Спецсимволы экранирует сам encoding/xml
func MarshalTwiML(reply string) ([]byte, error) {
	body, err := xml.Marshal(twimlResponse{Message: reply})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
