package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ChatbotService/internal/api/handlers"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"

	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// Auth проверяет админский токен management-эндпоинтов.
// Токен передается в заголовке Authorization: Bearer <token>.
// Вебхук WhatsApp и /metrics через этот middleware не проходят.
func Auth(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(headerAuthorization)
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			if token == header || token == "" {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			// Сравнение за постоянное время
			if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
