package openai

// Message одно сообщение в диалоге chat completions
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest тело запроса к /v1/chat/completions
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// chatResponse тело ответа /v1/chat/completions
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ErrorResponse модель ошибки от OpenAI API
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
