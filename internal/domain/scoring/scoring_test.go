package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/IT-Nick/healthbot/internal/domain/catalog"
	"github.com/IT-Nick/healthbot/internal/domain/model"
)

// answersFor строит ответы по кодам вариантов в порядке каталога.
func answersFor(t *testing.T, c *catalog.Catalog, values ...string) []model.Answer {
	t.Helper()
	if len(values) != c.TotalQuestions() {
		t.Fatalf("передано %d ответов, в каталоге %d вопросов", len(values), c.TotalQuestions())
	}
	answers := make([]model.Answer, 0, len(values))
	for i, v := range values {
		q, _ := c.QuestionAt(i)
		opt, err := c.FindOption(q.ID, v)
		if err != nil {
			t.Fatalf("вопрос %s: %v", q.ID, err)
		}
		answers = append(answers, model.Answer{QuestionID: q.ID, Selector: opt.Selector, Points: opt.Points})
	}
	return answers
}

// TestScore_AllSevereNoRisk все симптомы "severe", факторы риска нулевые: 12 баллов, high.
func TestScore_AllSevereNoRisk(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)

	res, err := s.Score(answersFor(t, c, "severe", "severe", "severe", "severe", "severe", "severe", "adult", "none", "no"))
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	if res.TotalScore != 12 || res.RiskTier != model.RiskHigh {
		t.Errorf("получено %d/%s, ожидалось 12/high", res.TotalScore, res.RiskTier)
	}
	if res.SymptomScore != 12 || res.RiskFactorScore != 0 {
		t.Errorf("разбивка %d+%d, ожидалось 12+0", res.SymptomScore, res.RiskFactorScore)
	}
	if len(res.Recommendations) == 0 {
		t.Error("рекомендации пусты")
	}
}

// TestScore_AllNone все ответы нулевые: 0 баллов, low.
func TestScore_AllNone(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)

	res, err := s.Score(answersFor(t, c, "none", "none", "none", "none", "none", "none", "adult", "none", "no"))
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	if res.TotalScore != 0 || res.RiskTier != model.RiskLow {
		t.Errorf("получено %d/%s, ожидалось 0/low", res.TotalScore, res.RiskTier)
	}
	if res.MaxScore != 18 {
		t.Errorf("MaxScore %d, ожидалось 18", res.MaxScore)
	}
}

// TestScore_RiskFactorsAdd проверяет надбавки факторов риска.
func TestScore_RiskFactorsAdd(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)

	res, err := s.Score(answersFor(t, c, "mild", "none", "none", "none", "none", "none", "elderly", "heart", "yes"))
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	if res.TotalScore != 7 || res.RiskFactorScore != 6 || res.RiskTier != model.RiskMedium {
		t.Errorf("получено total=%d risk=%d tier=%s", res.TotalScore, res.RiskFactorScore, res.RiskTier)
	}
}

// TestScore_Deterministic один и тот же ввод дает один и тот же результат.
func TestScore_Deterministic(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)
	answers := answersFor(t, c, "mild", "severe", "none", "mild", "none", "severe", "child", "asthma", "yes")

	first, err := s.Score(answers)
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := NewScorer(c).Score(answers)
		if err != nil {
			t.Fatalf("Score вернул ошибку: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("результаты различаются: %+v и %+v", first, again)
		}
	}
}

// TestScore_Incomplete неполные или перепутанные ответы отклоняются.
func TestScore_Incomplete(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)
	full := answersFor(t, c, "none", "none", "none", "none", "none", "none", "adult", "none", "no")

	if _, err := s.Score(full[:5]); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("частичные ответы: ожидалась ErrIncompleteAssessment, получено %v", err)
	}
	if _, err := s.Score(nil); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("нет ответов: ожидалась ErrIncompleteAssessment, получено %v", err)
	}

	swapped := append([]model.Answer(nil), full...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if _, err := s.Score(swapped); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("перепутанный порядок: ожидалась ErrIncompleteAssessment, получено %v", err)
	}

	dup := append([]model.Answer(nil), full...)
	dup[1] = dup[0]
	if _, err := s.Score(dup); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("повтор вопроса: ожидалась ErrIncompleteAssessment, получено %v", err)
	}

	bad := append([]model.Answer(nil), full...)
	bad[0].Selector = "9"
	if _, err := s.Score(bad); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("неизвестный селектор: ожидалась ErrIncompleteAssessment, получено %v", err)
	}
}

// TestTierFor проверяет границы уровней: 5 уже medium, 10 уже high.
func TestTierFor(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskTier
	}{
		{0, model.RiskLow},
		{4, model.RiskLow},
		{5, model.RiskMedium},
		{9, model.RiskMedium},
		{10, model.RiskHigh},
		{18, model.RiskHigh},
	}
	for _, c := range cases {
		got, err := TierFor(c.score)
		if err != nil {
			t.Fatalf("TierFor(%d) вернул ошибку: %v", c.score, err)
		}
		if got != c.want {
			t.Errorf("TierFor(%d)=%s, ожидалось %s", c.score, got, c.want)
		}
	}

	if _, err := TierFor(-1); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("TierFor(-1): ожидалась ErrScoreOutOfRange, получено %v", err)
	}
}

// TestScore_Boundaries проверяет границы на полном прохождении анкеты.
func TestScore_Boundaries(t *testing.T) {
	c := catalog.Default()
	s := NewScorer(c)

	five, err := s.Score(answersFor(t, c, "severe", "severe", "mild", "none", "none", "none", "adult", "none", "no"))
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	if five.TotalScore != 5 || five.RiskTier != model.RiskMedium {
		t.Errorf("5 баллов: получено %d/%s", five.TotalScore, five.RiskTier)
	}

	ten, err := s.Score(answersFor(t, c, "severe", "severe", "severe", "severe", "severe", "none", "adult", "none", "no"))
	if err != nil {
		t.Fatalf("Score вернул ошибку: %v", err)
	}
	if ten.TotalScore != 10 || ten.RiskTier != model.RiskHigh {
		t.Errorf("10 баллов: получено %d/%s", ten.TotalScore, ten.RiskTier)
	}
}

// TestRecommendations_Copy изменение возвращенного среза не затрагивает таблицу.
func TestRecommendations_Copy(t *testing.T) {
	recs := Recommendations(model.RiskLow)
	recs[0] = "changed"
	if Recommendations(model.RiskLow)[0] == "changed" {
		t.Error("таблица рекомендаций изменилась через копию")
	}
}
