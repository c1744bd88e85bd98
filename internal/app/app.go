package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IT-Nick/healthbot/internal/app/handlers/http/assessment_history_handler"
	"github.com/IT-Nick/healthbot/internal/app/handlers/http/assessment_report_handler"
	"github.com/IT-Nick/healthbot/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/healthbot/internal/app/handlers/telegram/message_handler"
	"github.com/IT-Nick/healthbot/internal/app/middleware"
	"github.com/IT-Nick/healthbot/internal/app/poller"
	"github.com/IT-Nick/healthbot/internal/domain/catalog"
	"github.com/IT-Nick/healthbot/internal/domain/conversation"
	"github.com/IT-Nick/healthbot/internal/domain/faq"
	resultsRepo "github.com/IT-Nick/healthbot/internal/domain/results/repository"
	resultsService "github.com/IT-Nick/healthbot/internal/domain/results/service"
	"github.com/IT-Nick/healthbot/internal/domain/scoring"
	sessionsRepo "github.com/IT-Nick/healthbot/internal/domain/sessions/repository"
	sessionsService "github.com/IT-Nick/healthbot/internal/domain/sessions/service"
	"github.com/IT-Nick/healthbot/internal/infra/config"
	"github.com/IT-Nick/healthbot/internal/infra/timer"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

type Services struct {
	sessionService *sessionsService.SessionService
	resultService  *resultsService.ResultService
}

type App struct {
	config *config.Config
	log    *zap.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	catalog *catalog.Catalog
	faq     *faq.Base
	engine  *conversation.Engine

	Services
}

// NewApp загружает контент, подключает хранилища и собирает движок диалога
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	questions, err := catalog.Load(cfg.Content.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	faqBase, err := faq.Load(cfg.Content.FAQ)
	if err != nil {
		return nil, fmt.Errorf("failed to load faq: %w", err)
	}

	app := &App{
		config:  cfg,
		log:     log,
		catalog: questions,
		faq:     faqBase,
	}

	if cfg.Storage.Type == config.StoragePostgres {
		db, err := InitDatabase(ctx, cfg.DSN(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	if err := app.initServices(); err != nil {
		app.Close()
		return nil, err
	}

	app.engine = conversation.NewEngine(app.catalog, scoring.NewScorer(app.catalog), app.sessionService, app.faq, log.Named("conversation"))

	log.Info("Application initialized",
		zap.String("storage", cfg.Storage.Type),
		zap.Int("questions", app.catalog.TotalQuestions()),
		zap.Duration("session_ttl", cfg.Session.TTL.Std()),
	)
	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() error {
	sessionRepo, err := sessionsRepo.NewRepository(app.config.Storage.Type, app.config.Storage.File, app.db)
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	var resultRepo resultsRepo.Repository = resultsRepo.NewMemoryRepository()
	if app.db != nil {
		resultRepo = resultsRepo.NewPostgresRepository(app.db)
	}

	app.sessionService = sessionsService.NewSessionService(sessionRepo, app.config.Session.TTL.Std())
	app.resultService = resultsService.NewResultService(resultRepo)
	return nil
}

// ListenAndServeTelegram запускает Telegram бота
func (app *App) ListenAndServeTelegram() error {
	p, err := poller.NewPoller(app.config)
	if err != nil {
		return fmt.Errorf("poller.NewPoller: %w", err)
	}

	botLog := app.log.Named("telegram")
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c telebot.Context) {
			botLog.Error("Bot error", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram(botLog)

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram(log *zap.Logger) {
	app.bot.Use(middleware.Recover(log), middleware.Logger(log))

	// Команды /start, /menu и /cancel тоже приходят сюда: движок распознает их сам
	app.bot.Handle(telebot.OnText, message_handler.NewMessageHandler(app.engine, app.resultService, log).GetHandlerFunc())
}

// Handler маршруты HTTP сервера
func (app *App) Handler() http.Handler {
	httpLog := app.log.Named("http")
	mx := http.NewServeMux()

	var db health_handler.Pinger
	if app.db != nil {
		db = app.db
	}
	mx.Handle("GET /healthz", health_handler.NewHealthHandler(db))
	mx.Handle("GET /users/{id}/assessments", assessment_history_handler.NewAssessmentHistoryHandler(app.resultService, httpLog))
	mx.Handle("GET /assessments/{id}/report.pdf", assessment_report_handler.NewAssessmentReportHandler(app.resultService, app.catalog, httpLog))
	return mx
}

// ListenAndServeHTTP запускает HTTP сервер в отдельной горутине; ошибка запуска приходит в канал
func (app *App) ListenAndServeHTTP() <-chan error {
	app.server = &http.Server{
		Addr:              app.config.HTTPAddr(),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("HTTP server listening", zap.String("addr", app.server.Addr))
		errCh <- app.server.ListenAndServe()
	}()
	return errCh
}

// Run запускает бота, HTTP сервер и очистку сессий и ждет отмены контекста
func (app *App) Run(ctx context.Context) error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}
	app.log.Info("Telegram bot started", zap.String("mode", app.config.TelegramBot.Mode))

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go timer.NewTimerUpdater(app.sessionService, app.config.Session.PurgeInterval.Std(), app.log.Named("timer")).Run(purgeCtx)

	httpErr := app.ListenAndServeHTTP()

	var runErr error
	select {
	case <-ctx.Done():
		app.log.Info("Shutting down")
	case err := <-httpErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}

	app.bot.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	app.Close()
	return runErr
}

// Close освобождает подключение к базе данных
func (app *App) Close() {
	if app.db != nil {
		app.db.Close()
		app.db = nil
	}
}
