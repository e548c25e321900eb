package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse стандартное тело ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует JSON тело запроса в v
// Неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
// При body == nil пишется только статус
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	// Ошибку кодирования уже некому отдать: статус отправлен
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError пишет JSON ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

// RespondBadRequest пишет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondNotFound пишет 404 Not Found
func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusNotFound, msg)
}

// RespondUnauthorized пишет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, msg)
}

// RespondForbidden пишет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusForbidden, msg)
}

// RespondConflict пишет 409 Conflict
func RespondConflict(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusConflict, msg)
}

// RespondInternalError пишет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// RespondServiceUnavailable пишет 503 Service Unavailable
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, "сервис временно недоступен")
}
