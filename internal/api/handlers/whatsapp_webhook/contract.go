package whatsapp_webhook

import (
	"context"

	handleMessage "github.com/m04kA/SMC-ChatbotService/internal/usecase/handle_message"
)

type HandleMessageUseCase interface {
	Execute(ctx context.Context, req *handleMessage.Request) (*handleMessage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
