package whatsapp_webhook

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handleMessage "github.com/m04kA/SMC-ChatbotService/internal/usecase/handle_message"
)

type fakeUseCase struct {
	gotReq *handleMessage.Request
	reply  string
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *handleMessage.Request) (*handleMessage.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &handleMessage.Response{Reply: f.reply}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func postWebhook(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_RepliesWithTwiML(t *testing.T) {
	uc := &fakeUseCase{reply: "You're booked for 10:00."}
	h := NewHandler(uc, nopLogger{})

	rec := postWebhook(t, h, url.Values{
		"From": {"whatsapp:+79991234567"},
		"To":   {"whatsapp:+14155238886"},
		"Body": {"book me at 10"},
	})

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Response><Message>You&#39;re booked for 10:00.</Message></Response>")
}

func TestHandle_StripsWhatsappPrefix(t *testing.T) {
	uc := &fakeUseCase{reply: "ok"}
	h := NewHandler(uc, nopLogger{})

	postWebhook(t, h, url.Values{
		"From": {"whatsapp:+79991234567"},
		"To":   {"whatsapp:+14155238886"},
		"Body": {"  hello  "},
	})

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "+79991234567", uc.gotReq.From)
	assert.Equal(t, "+14155238886", uc.gotReq.To)
	assert.Equal(t, "hello", uc.gotReq.Body)
}

func TestHandle_EscapesXMLInReply(t *testing.T) {
	uc := &fakeUseCase{reply: `Free today: 09:00-10:00 & 12:00-13:00 <pick one>`}
	h := NewHandler(uc, nopLogger{})

	rec := postWebhook(t, h, url.Values{"From": {"whatsapp:+79991234567"}})

	body := rec.Body.String()
	assert.Contains(t, body, "&amp;")
	assert.Contains(t, body, "&lt;pick one&gt;")
	assert.NotContains(t, body, "<pick one>")
}

func TestHandle_UseCaseError_FallbackReply(t *testing.T) {
	uc := &fakeUseCase{err: assert.AnError}
	h := NewHandler(uc, nopLogger{})

	rec := postWebhook(t, h, url.Values{"From": {"whatsapp:+79991234567"}})

	// Twilio должен получить 200 с TwiML, иначе клиент останется без ответа
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), msgFallbackReply)
}
