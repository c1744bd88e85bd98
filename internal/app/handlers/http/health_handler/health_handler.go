package health_handler

import (
	"context"
	"net/http"
	"time"

	httpError "github.com/IT-Nick/healthbot/pkg/http"
)

// Pinger проверка доступности зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse структура для ответа
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HealthHandler структура для обработчика
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler создает новый экземпляр обработчика. db может быть nil, если база не используется.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// ServeHTTP метод для обработки запроса
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Status: "ok"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			httpError.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.Database = "ok"
	}
	httpError.JSONResponse(w, response)
}
