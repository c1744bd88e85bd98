package assessment_history_handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	httpError "github.com/IT-Nick/healthbot/pkg/http"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ResultLister источник истории результатов
type ResultLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]model.AssessmentRecord, error)
}

// AssessmentHistoryHandler структура для обработчика
type AssessmentHistoryHandler struct {
	results ResultLister
	log     *zap.Logger
}

// NewAssessmentHistoryHandler создает новый экземпляр обработчика
func NewAssessmentHistoryHandler(results ResultLister, log *zap.Logger) *AssessmentHistoryHandler {
	return &AssessmentHistoryHandler{results: results, log: log}
}

// ServeHTTP метод для обработки запроса GET /users/{id}/assessments
func (h *AssessmentHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing user id")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	records, err := h.results.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.log.Error("Failed to list assessments", zap.String("user_id", userID), zap.Error(err))
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}

	response := AssessmentHistoryResponse{
		UserID: userID,
		Total:  len(records),
		Assessments: lo.Map(records, func(rec model.AssessmentRecord, _ int) AssessmentSummary {
			return AssessmentSummary{
				ID:          rec.ID.String(),
				TotalScore:  rec.Result.TotalScore,
				MaxScore:    rec.Result.MaxScore,
				RiskTier:    string(rec.Result.RiskTier),
				CompletedAt: rec.CompletedAt,
				ReportURL:   fmt.Sprintf("/assessments/%s/report.pdf", rec.ID),
			}
		}),
	}
	httpError.JSONResponse(w, response)
}
