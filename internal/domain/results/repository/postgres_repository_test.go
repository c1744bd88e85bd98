package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/IT-Nick/healthbot/internal/app"
	"github.com/IT-Nick/healthbot/internal/domain/model"
	"github.com/IT-Nick/healthbot/internal/domain/results/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// testDB подключается к базе из DATABASE_URL, без нее тест пропускается
func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL не задан")
	}
	db, err := app.InitDatabase(context.Background(), dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("ошибка подключения к базе: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestPostgresRepository(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := repository.NewPostgresRepository(db)

	userID := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), "DELETE FROM assessment_results WHERE user_id = $1", userID)
	})

	base := time.Now().UTC().Truncate(time.Microsecond)
	older := model.AssessmentRecord{
		ID:          uuid.New(),
		UserID:      userID,
		Result:      model.AssessmentResult{TotalScore: 3, MaxScore: 18, RiskTier: model.RiskLow, Recommendations: []string{"Drink water."}},
		CompletedAt: base.Add(-time.Hour),
	}
	newer := model.AssessmentRecord{
		ID:          uuid.New(),
		UserID:      userID,
		Result:      model.AssessmentResult{TotalScore: 12, MaxScore: 18, RiskTier: model.RiskHigh},
		CompletedAt: base,
	}
	for _, rec := range []model.AssessmentRecord{older, newer} {
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert вернул ошибку: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, older.ID)
	if err != nil {
		t.Fatalf("GetByID вернул ошибку: %v", err)
	}
	if got.ID != older.ID || got.UserID != userID || got.Result.TotalScore != 3 || !got.CompletedAt.Equal(older.CompletedAt) {
		t.Errorf("прочитано %+v", got)
	}
	if len(got.Result.Recommendations) != 1 {
		t.Errorf("рекомендации не сохранились: %v", got.Result.Recommendations)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, repository.ErrRecordNotFound) {
		t.Errorf("ожидалась ErrRecordNotFound, получено %v", err)
	}

	list, err := repo.ListByUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("ListByUser вернул ошибку: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("ожидались две записи, новые первыми: %+v", list)
	}

	limited, err := repo.ListByUser(ctx, userID, 1)
	if err != nil {
		t.Fatalf("ListByUser вернул ошибку: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Errorf("limit не соблюден: %+v", limited)
	}
}
