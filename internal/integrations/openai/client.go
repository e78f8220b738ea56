package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTemperature = 0.7

// Client клиент для работы с OpenAI Chat Completions API
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента OpenAI
func NewClient(baseURL, apiKey, model string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Complete отправляет диалог и возвращает ответ ассистента
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	url := c.baseURL + "/v1/chat/completions"

	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: rate limited", ErrInvalidResponse)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrInvalidResponse)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// CompleteWithGracefulDegradation отправляет диалог с graceful degradation
// При недоступности OpenAI возвращает ErrServiceDegraded, что позволяет боту
// ответить шаблонным сообщением вместо молчания
func (c *Client) CompleteWithGracefulDegradation(ctx context.Context, messages []Message) (string, error) {
	reply, err := c.Complete(ctx, messages)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("OpenAI unavailable, applying graceful degradation: %v", err)
		return "", fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	return reply, nil
}
