package res

import (
	"encoding/json"
	"net/http"

	"github.com/Dhoini/subscriber-access-service/pkg/logger"
)

// ErrorResponse представляет формат JSON-ответа для ошибок.
// Поле ok присутствует всегда, чтобы провайдер мог программно различать исходы.
type ErrorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"` // Сообщение об ошибке (для вызывающей стороны)
}

// JsonResponse отправляет JSON-ответ с заданным статусом.
func JsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// JsonErrorResponse отправляет JSON ответ ошибки.
func JsonErrorResponse(w http.ResponseWriter, message string, status int, log *logger.Logger) {
	JsonResponse(w, ErrorResponse{Ok: false, Error: message}, status)
	log.Debugw("Error response sent", "status", status, "error", message)
}
