package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Ограничение на размер тела вебхука; payload провайдера небольшой
	MaxBodySize = int64(65536)
)

// RawRequest хранит входящий запрос в двух видах: точные байты тела
// (вход для подписи) и разобранный JSON (вход для нормализации).
type RawRequest struct {
	Body   []byte
	JSON   map[string]any
	Header http.Header
	Query  url.Values
}

// ReadRequest читает тело запроса один раз и возвращает RawRequest.
// Важно: чтение тела "потребляет" его, поэтому все дальнейшие шаги
// работают только с RawRequest.
func ReadRequest(w http.ResponseWriter, r *http.Request) (RawRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return RawRequest{}, err
	}

	return RawRequest{
		Body:   body,
		JSON:   ParseLoose(body),
		Header: r.Header,
		Query:  r.URL.Query(),
	}, nil
}

// ParseLoose разбирает JSON максимально терпимо: отсутствующее или
// некорректное тело дает пустой объект, а не ошибку.
func ParseLoose(body []byte) map[string]any {
	parsed := map[string]any{}
	if len(body) == 0 {
		return parsed
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return map[string]any{}
	}
	return parsed
}

// Порядок источников кандидатов зафиксирован контрактом провайдера:
// сначала query-параметры, затем заголовки, для токена — еще и тело.
var (
	signatureQueryParams = []string{"signature", "sig"}
	signatureHeaders     = []string{"x-kiwify-signature", "x-webhook-signature", "x-signature"}
	tokenHeaders         = []string{"x-kiwify-token", "x-webhook-token"}
	tokenBodyFields      = []string{"token", "webhook_token", "secret"}
)

const bearerPrefix = "Bearer "

// Signature возвращает кандидата подписи из запроса или пустую строку.
func (r RawRequest) Signature() string {
	for _, p := range signatureQueryParams {
		if v := strings.TrimSpace(r.Query.Get(p)); v != "" {
			return v
		}
	}
	for _, h := range signatureHeaders {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			return v
		}
	}
	return ""
}

// Token возвращает кандидата фиксированного токена из запроса или пустую строку.
func (r RawRequest) Token() string {
	for _, h := range tokenHeaders {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(r.Header.Get("authorization")); v != "" {
		return strings.TrimSpace(strings.TrimPrefix(v, bearerPrefix))
	}
	for _, f := range tokenBodyFields {
		if v, ok := r.JSON[f].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
