package whatsapp_webhook

import (
	"net/http"
)

const (
	msgFallbackReply = "Sorry, something went wrong on our side. Please try again in a minute."

	contentTypeXML = "text/xml; charset=utf-8"
)

type Handler struct {
	useCase HandleMessageUseCase
	logger  Logger
}

func NewHandler(useCase HandleMessageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /webhook/whatsapp
// Принимает form-encoded вебхук Twilio и отвечает TwiML документом.
// Twilio ждет 200 с TwiML даже при ошибке, иначе клиент не получит ответа,
// поэтому любые сбои превращаются в fallback-сообщение.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /webhook/whatsapp - Failed to parse form: %v", err)
		h.respondTwiML(w, msgFallbackReply)
		return
	}

	req := ToUseCaseRequest(r)

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("POST /webhook/whatsapp - Failed to handle message: from=%s, error=%v", req.From, err)
		h.respondTwiML(w, msgFallbackReply)
		return
	}

	h.logger.Info("POST /webhook/whatsapp - Message handled successfully: from=%s, reply_len=%d",
		req.From, len(result.Reply))
	h.respondTwiML(w, result.Reply)
}

func (h *Handler) respondTwiML(w http.ResponseWriter, reply string) {
	body, err := MarshalTwiML(reply)
	if err != nil {
		h.logger.Error("POST /webhook/whatsapp - Failed to marshal TwiML: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("POST /webhook/whatsapp - Failed to write response: %v", err)
	}
}
