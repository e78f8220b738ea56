package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Client клиент для отправки исходящих WhatsApp-сообщений через Twilio
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Twilio
func NewClient(baseURL, accountSID, authToken, fromNumber string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// messageResponse тело ответа Messages.json
type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от Twilio API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendWhatsApp отправляет сообщение на номер клиента
// Номера передаются без префикса whatsapp:, клиент добавляет его сам.
func (c *Client) SendWhatsApp(ctx context.Context, toNumber, body string) error {
	apiURL := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("From", "whatsapp:"+c.fromNumber)
	form.Set("To", "whatsapp:"+toNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		respBody, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d, code %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Code, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var msgResp messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Twilio message sent: sid=%s, status=%s, to=%s", msgResp.SID, msgResp.Status, toNumber)

	return nil
}
