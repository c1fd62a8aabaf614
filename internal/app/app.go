// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, хранилище отметок, сервисы,
// обработчики, фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/bot"
	"serotonyl.ru/signin-bot/internal/bot/filters"
	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/config"
	"serotonyl.ru/signin-bot/internal/db/postgres"
	"serotonyl.ru/signin-bot/internal/features/admin"
	"serotonyl.ru/signin-bot/internal/features/economy"
	"serotonyl.ru/signin-bot/internal/features/members"
	"serotonyl.ru/signin-bot/internal/features/signin"
	"serotonyl.ru/signin-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI

	closers []func() error
}

// New создаёт и инициализирует приложение.
// Порядок важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc := common.LoadLocation(cfg.AppTimezone)

	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if err := postgres.Migrate(ctx, pool, Migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	a := &App{DB: pool}

	// === 2. Хранилище отметок ===
	store, err := a.openStore(cfg, pool)
	if err != nil {
		a.Close()
		return nil, err
	}

	// === 3. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	a.BotAPI = botAPI
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 4. Репозитории ===
	memberRepo := members.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 5. Сервисы ===
	memberService := members.NewService(memberRepo)
	economyService := economy.NewService(economyRepo, cfg.SigninPointName, loc)
	adminService := admin.NewService(adminRepo, cfg)

	engine := signin.NewEngine(store, common.Clock(loc))
	formatter := signin.NewFormatter(cfg.SigninPointName, signin.Templates{
		Base:       cfg.SigninTemplateBase,
		Continuous: cfg.SigninTemplateContinuous,
		Repeat:     cfg.SigninTemplateRepeat,
	})
	var calendar signin.CalendarRenderer
	if cfg.SigninShowCalendar {
		calendar = signin.NewTextCalendar()
	}
	signinService := signin.NewService(engine, economyService, formatter, calendar, cfg)

	// === 6. Обработчики ===
	signinHandler := signin.NewHandler(signinService, botAPI, cfg)
	economyHandler := economy.NewHandler(economyService, botAPI)
	adminHandler := admin.NewHandler(adminService, memberService, signinService, economyService, botAPI)

	// === 7. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.SigninChatID, memberService, botAPI, cfg.IsAdmin)

	// === 8. Собираем бота ===
	a.Bot = bot.New(
		botAPI, cfg,
		memberService,
		economyService, economyHandler,
		signinHandler,
		adminHandler,
		chatFilter,
	)
	a.closers = append(a.closers, func() error { a.Bot.Close(); return nil })

	// === 9. Планировщик задач ===
	a.Scheduler = jobs.NewScheduler(loc, cfg.SigninReminderCron, cfg.SigninChatID, adminService, a.Bot.SendMessageToChat)

	log.WithFields(log.Fields{
		"storage":  cfg.SigninStorage,
		"timezone": loc.String(),
		"calendar": cfg.SigninShowCalendar,
	}).Info("Приложение собрано")
	return a, nil
}

// openStore выбирает хранилище отметок по SIGNIN_STORAGE.
func (a *App) openStore(cfg *config.Config, pool *pgxpool.Pool) (signin.Store, error) {
	switch cfg.SigninStorage {
	case config.StoragePostgres:
		return signin.NewPostgresStore(pool), nil
	case config.StorageSQLite:
		s, err := signin.OpenSQLiteStore(cfg.SigninSQLitePath)
		if err != nil {
			return nil, fmt.Errorf("ошибка открытия SQLite (%s): %w", cfg.SigninSQLitePath, err)
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return signin.NewFileStore(cfg.SigninPath), nil
	}
}

// Close освобождает ресурсы в обратном порядке создания.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.WithError(err).Warn("Ошибка при закрытии ресурса")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// shutdownTimeout — сколько ждём завершения обработчиков при остановке.
const shutdownTimeout = 10 * time.Second

// Shutdown останавливает планировщик, дожидается обработчиков и закрывает ресурсы.
func (a *App) Shutdown() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Bot != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Bot.Wait(ctx)
	}
	a.Close()
}
