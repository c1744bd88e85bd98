// Package report формирует PDF-отчет по сохраненному результату анкеты.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/jung-kurt/gofpdf"
)

// Questions источник текстов вопросов и вариантов
type Questions interface {
	IndexOf(questionID string) (int, bool)
	QuestionAt(index int) (model.Question, error)
}

const disclaimer = "This report is initial advice only and cannot replace a diagnosis by a doctor."

// GeneratePDFReport пишет PDF-отчет в w.
// Отчет формируется непрерывным текстом с переносами, без таблицы.
func GeneratePDFReport(w io.Writer, rec model.AssessmentRecord, questions Questions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("PM2.5 health assessment", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, "PM2.5 health assessment report", "", "L", false)
	pdf.Ln(4)

	res := rec.Result
	pdf.SetFont("Helvetica", "", 12)
	info := fmt.Sprintf("Record: %s\nUser ID: %s\nCompleted: %s\nScore: %d of %d (symptoms %d, risk factors %d)\nRisk level: %s\n",
		rec.ID, rec.UserID, rec.CompletedAt.Format("2006-01-02 15:04 MST"),
		res.TotalScore, res.MaxScore, res.SymptomScore, res.RiskFactorScore, strings.ToUpper(string(res.RiskTier)))
	pdf.MultiCell(0, 8, tr(info), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 8, "Answers", "", "L", false)
	for i, a := range res.Answers {
		prompt, label := a.QuestionID, a.Selector
		if idx, ok := questions.IndexOf(a.QuestionID); ok {
			if q, err := questions.QuestionAt(idx); err == nil {
				prompt = q.Prompt
				for _, opt := range q.Options {
					if opt.Selector == a.Selector {
						label = opt.Label
					}
				}
			}
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d:", i+1), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, tr(prompt), "", "L", false)
		pdf.MultiCell(0, 8, tr(fmt.Sprintf("Answer: %s (%d points)", label, a.Points)), "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 8, "Recommendations", "", "L", false)
	pdf.SetFont("Helvetica", "", 12)
	for _, r := range res.Recommendations {
		pdf.MultiCell(0, 8, tr("- "+r), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, disclaimer, "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf report: %w", err)
	}
	return nil
}
