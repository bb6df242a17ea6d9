package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse тело ошибки для всех HTTP ответов сервиса
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeJSON декодирует тело запроса в переданную структуру
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// RespondJSON сериализует payload и пишет его с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest пишет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound пишет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnauthorized пишет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondInternalError пишет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
