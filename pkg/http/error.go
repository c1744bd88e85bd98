// Package http содержит общие помощники HTTP-обработчиков.
package http

import (
	"encoding/json"
	"net/http"
)

// ErrorBody тело ответа с ошибкой
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorResponse пишет ошибку в формате JSON с указанным статусом
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message})
}

// JSONResponse пишет значение в формате JSON со статусом 200
func JSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
