package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/Dhoini/subscriber-access-service/internal/domain"
	"github.com/Dhoini/subscriber-access-service/pkg/logger"
)

// Authenticator проверяет подлинность вебхук-запроса одним из двух
// взаимоисключающих механизмов: HMAC-подпись тела или фиксированный токен.
type Authenticator struct {
	signingSecret string
	fixedToken    string
	debug         bool
	log           *logger.Logger
}

// NewAuthenticator создает новый Authenticator.
// Оба секрета опциональны; если не задан ни один, каждый запрос будет отклонен.
func NewAuthenticator(signingSecret, fixedToken string, debug bool, log *logger.Logger) *Authenticator {
	return &Authenticator{
		signingSecret: signingSecret,
		fixedToken:    fixedToken,
		debug:         debug,
		log:           log,
	}
}

// Authenticate решает, подлинный ли запрос.
//
// Если в запросе есть кандидат подписи и настроен секрет подписи,
// проверяется только подпись: при несовпадении отката на токен нет.
func (a *Authenticator) Authenticate(req RawRequest) error {
	signature := req.Signature()

	if signature != "" && a.signingSecret != "" {
		expected := SignBody(a.signingSecret, req.Body)
		if a.debug {
			a.log.Debugw("Verifying webhook signature",
				"candidate", mask(signature),
				"secret", mask(a.signingSecret),
			)
		}
		if !secureEqual(expected, strings.ToLower(signature)) {
			return domain.ErrInvalidSignature
		}
		return nil
	}

	if a.fixedToken != "" {
		token := req.Token()
		if a.debug {
			a.log.Debugw("Verifying webhook token", "candidate", mask(token))
		}
		if token == "" || !secureEqual(a.fixedToken, token) {
			return domain.ErrInvalidToken
		}
		return nil
	}

	return domain.ErrAuthNotConfigured
}

// SignBody вычисляет HMAC-SHA1 над точными байтами тела запроса
// и возвращает подпись в нижнем hex-регистре.
func SignBody(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// secureEqual сравнивает строки за постоянное время.
// Разная длина отклоняется сразу, без сравнения содержимого.
func secureEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// mask скрывает секрет в логах: первые 4 символа и длина.
// Секреты никогда не логируются целиком.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
