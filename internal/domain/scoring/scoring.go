// Package scoring считает итоговый балл анкеты, уровень риска и рекомендации.
// Не хранит состояния: результат полностью определяется ответами и каталогом.
package scoring

import (
	"errors"
	"fmt"

	"github.com/IT-Nick/healthbot/internal/domain/catalog"
	"github.com/IT-Nick/healthbot/internal/domain/model"
)

var (
	// ErrIncompleteAssessment ответы не покрывают каталог ровно по одному на вопрос
	ErrIncompleteAssessment = errors.New("incomplete assessment")
	// ErrScoreOutOfRange балл вне определенных диапазонов. Это дефект, а не пользовательская ошибка.
	ErrScoreOutOfRange = errors.New("score out of range")
)

// Пороги уровней риска, нижняя граница включительно
const (
	MediumThreshold = 5
	HighThreshold   = 10
)

// recommendations статическая таблица рекомендаций по уровню риска.
// Таблица обязана покрывать все уровни, это проверяется в init.
var recommendations = map[model.RiskTier][]string{
	model.RiskLow: {
		"Your symptoms are mild. Keep checking the daily PM2.5 level before going outside.",
		"On days with high dust levels wear an N95 mask outdoors.",
		"Drink plenty of water and keep windows closed when the air quality is poor.",
	},
	model.RiskMedium: {
		"Limit time outdoors and avoid strenuous outdoor exercise while PM2.5 is high.",
		"Wear an N95 mask whenever you go outside.",
		"Use an air purifier indoors if you can.",
		"If your symptoms get worse, see a doctor.",
	},
	model.RiskHigh: {
		"Please see a doctor as soon as possible, especially if you have trouble breathing or chest pain.",
		"Stay indoors in a room with clean air and keep your usual medication at hand.",
		"Wear an N95 mask if you must go outside.",
		"In an emergency call 1669.",
	},
}

func init() {
	for _, tier := range []model.RiskTier{model.RiskLow, model.RiskMedium, model.RiskHigh} {
		if len(recommendations[tier]) == 0 {
			panic(fmt.Sprintf("scoring: no recommendations for tier %s", tier))
		}
	}
}

// Scorer считает результат по каталогу
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer создает новый экземпляр Scorer
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Score считает итог по полному набору ответов.
// Баллы берутся из каталога по селектору, а не из самого ответа.
func (s *Scorer) Score(answers []model.Answer) (model.AssessmentResult, error) {
	total := s.catalog.TotalQuestions()
	if len(answers) != total {
		return model.AssessmentResult{}, fmt.Errorf("%w: %d of %d questions answered", ErrIncompleteAssessment, len(answers), total)
	}

	result := model.AssessmentResult{
		MaxScore: s.catalog.MaxScore(),
		Answers:  make([]model.Answer, 0, len(answers)),
	}
	for i, a := range answers {
		q, err := s.catalog.QuestionAt(i)
		if err != nil {
			return model.AssessmentResult{}, fmt.Errorf("%w: %v", ErrIncompleteAssessment, err)
		}
		if a.QuestionID != q.ID {
			return model.AssessmentResult{}, fmt.Errorf("%w: answer %d is for %q, expected %q", ErrIncompleteAssessment, i, a.QuestionID, q.ID)
		}
		opt, err := s.catalog.FindOption(q.ID, a.Selector)
		if err != nil {
			return model.AssessmentResult{}, fmt.Errorf("%w: %v", ErrIncompleteAssessment, err)
		}

		switch q.Category {
		case model.CategorySymptom:
			result.SymptomScore += opt.Points
		case model.CategoryRiskFactor:
			result.RiskFactorScore += opt.Points
		}
		result.Answers = append(result.Answers, model.Answer{QuestionID: q.ID, Selector: opt.Selector, Points: opt.Points})
	}
	result.TotalScore = result.SymptomScore + result.RiskFactorScore

	tier, err := TierFor(result.TotalScore)
	if err != nil {
		return model.AssessmentResult{}, err
	}
	result.RiskTier = tier
	result.Recommendations = Recommendations(tier)

	return result, nil
}

// TierFor уровень риска по баллу: [0,5) low, [5,10) medium, [10,∞) high
func TierFor(score int) (model.RiskTier, error) {
	switch {
	case score < 0:
		return "", fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	case score < MediumThreshold:
		return model.RiskLow, nil
	case score < HighThreshold:
		return model.RiskMedium, nil
	default:
		return model.RiskHigh, nil
	}
}

// Recommendations копия рекомендаций для уровня
func Recommendations(tier model.RiskTier) []string {
	src := recommendations[tier]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
