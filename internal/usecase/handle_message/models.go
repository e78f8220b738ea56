package handle_message

// Request входящее WhatsApp-сообщение из Twilio-вебхука
type Request struct {
	From string // Номер клиента в формате E.164, без префикса whatsapp:
	To   string // Номер бизнеса, на который пришло сообщение
	Body string // Текст сообщения
}

// Response ответ бота, который вернется клиенту в TwiML
type Response struct {
	Reply string
}
