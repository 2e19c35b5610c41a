package webhook

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoose(t *testing.T) {
	assert.Equal(t, map[string]any{}, ParseLoose(nil))
	assert.Equal(t, map[string]any{}, ParseLoose([]byte("")))
	assert.Equal(t, map[string]any{}, ParseLoose([]byte("not json at all")))
	assert.Equal(t, map[string]any{}, ParseLoose([]byte(`[1,2,3]`)))
	assert.Equal(t, map[string]any{"a": "b"}, ParseLoose([]byte(`{"a":"b"}`)))
}

func TestReadRequest_PreservesExactBytes(t *testing.T) {
	body := `{"event":"compra aprovada","customer":{"email":"a@b.com"}}`
	r := httptest.NewRequest("POST", "/webhooks/kiwify?sig=abc", strings.NewReader(body))
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, []byte(body), raw.Body)
	assert.Equal(t, "compra aprovada", raw.JSON["event"])
	assert.Equal(t, "abc", raw.Signature())
}

func TestReadRequest_MalformedBodyYieldsEmptyJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/webhooks/kiwify", strings.NewReader("{{{"))
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, []byte("{{{"), raw.Body)
	assert.Empty(t, raw.JSON)
}

func TestSignatureSourcePriority(t *testing.T) {
	r := httptest.NewRequest("POST", "/webhooks/kiwify?signature=from-query", nil)
	r.Header.Set("x-kiwify-signature", "from-header")
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	// Query-параметр побеждает заголовок
	assert.Equal(t, "from-query", raw.Signature())
}

func TestSignatureHeaderOrder(t *testing.T) {
	r := httptest.NewRequest("POST", "/webhooks/kiwify", nil)
	r.Header.Set("x-signature", "generic")
	r.Header.Set("x-webhook-signature", "webhook")
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, "webhook", raw.Signature())
}

func TestTokenSourcePriority(t *testing.T) {
	body := `{"token":"from-body"}`
	r := httptest.NewRequest("POST", "/webhooks/kiwify", strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer from-bearer")
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	// Заголовок побеждает поле тела
	assert.Equal(t, "from-bearer", raw.Token())
}

func TestTokenFromBodyWhenHeadersAbsent(t *testing.T) {
	body := `{"webhook_token":"tok-1"}`
	r := httptest.NewRequest("POST", "/webhooks/kiwify", strings.NewReader(body))
	w := httptest.NewRecorder()

	raw, err := ReadRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, "tok-1", raw.Token())
}
