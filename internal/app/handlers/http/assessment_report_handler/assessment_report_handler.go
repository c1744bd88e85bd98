package assessment_report_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/healthbot/internal/app/report"
	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/results/repository"
	httpError "github.com/IT-Nick/healthbot/pkg/http"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResultGetter источник сохраненных результатов
type ResultGetter interface {
	Get(ctx context.Context, id uuid.UUID) (model.AssessmentRecord, error)
}

// AssessmentReportHandler структура для обработчика
type AssessmentReportHandler struct {
	results   ResultGetter
	questions report.Questions
	log       *zap.Logger
}

// NewAssessmentReportHandler создает новый экземпляр обработчика
func NewAssessmentReportHandler(results ResultGetter, questions report.Questions, log *zap.Logger) *AssessmentReportHandler {
	return &AssessmentReportHandler{results: results, questions: questions, log: log}
}

// ServeHTTP метод для обработки запроса GET /assessments/{id}/report.pdf
func (h *AssessmentReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid assessment id")
		return
	}

	rec, err := h.results.Get(r.Context(), id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Assessment %s not found", id))
		return
	}
	if err != nil {
		h.log.Error("Failed to get assessment", zap.String("id", id.String()), zap.Error(err))
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get assessment")
		return
	}

	var buf bytes.Buffer
	if err := report.GeneratePDFReport(&buf, rec, h.questions); err != nil {
		h.log.Error("Failed to generate report", zap.String("id", id.String()), zap.Error(err))
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "assessment_"+id.String()+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
