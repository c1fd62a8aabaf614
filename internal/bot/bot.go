// Package bot содержит главный модуль бота — запуск, маршрутизацию и остановку.
// bot.go принимает апдейты через long polling и раздаёт их обработчикам.
package bot

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/bot/filters"
	"serotonyl.ru/signin-bot/internal/bot/middleware"
	"serotonyl.ru/signin-bot/internal/config"
	"serotonyl.ru/signin-bot/internal/features/admin"
	"serotonyl.ru/signin-bot/internal/features/economy"
	"serotonyl.ru/signin-bot/internal/features/members"
	"serotonyl.ru/signin-bot/internal/features/signin"
)

const helpText = `📅 每日签到机器人

/签到 — 每日签到，领取积分
/签到历史 — 查看签到记录与习惯分析
/积分 — 查看当前积分
/积分记录 — 最近的积分变动

同一周内连续签到可获得额外奖励，周一重新计算。`

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	signinHandler  *signin.Handler
	economyHandler *economy.Handler
	adminHandler   *admin.Handler

	memberService  *members.Service
	economyService *economy.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
	wg       sync.WaitGroup
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	memberService *members.Service,
	economyService *economy.Service,
	economyHandler *economy.Handler,
	signinHandler *signin.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		chatFilter:     chatFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		signinHandler:  signinHandler,
		economyHandler: economyHandler,
		adminHandler:   adminHandler,
		memberService:  memberService,
		economyService: economyService,
		parser:         NewCommandParser(),
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram. Блокирует до отмены ctx.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": cap(b.inflight),
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
		"chat_id":      b.cfg.SigninChatID,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			select {
			case b.inflight <- struct{}{}:
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// Wait ждёт завершения обработчиков, но не дольше ctx.
func (b *Bot) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("Не все обработчики завершились до таймаута")
	}
}

// Close останавливает фоновые горутины бота.
func (b *Bot) Close() {
	b.rateLimiter.Close()
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic(update.UpdateID)

	// Вступление в основной чат
	if update.Message != nil && len(update.Message.NewChatMembers) > 0 {
		if update.Message.Chat != nil && update.Message.Chat.ID == b.cfg.SigninChatID {
			b.handleNewMembers(ctx, update.Message.NewChatMembers)
		}
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message
	middleware.LogMessage(message)

	// Доступ: SIGNIN_CHAT_ID или личка участника
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// В личке сначала даём шанс админ-командам (в том числе вводу пароля)
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("parsed command")

	if !b.rateLimiter.Allow(userID) {
		log.WithField("user_id", userID).Debug("rate limited")
		return
	}

	if err := b.memberService.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
	}

	b.routeCommand(ctx, message, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, message *tgbotapi.Message, cmd string, args []string) {
	chatID := message.Chat.ID
	userID := message.From.ID

	switch Route(cmd) {
	case RouteCheckIn:
		b.signinHandler.HandleCheckIn(ctx, message)
	case RouteHistory:
		b.signinHandler.HandleHistory(ctx, message)
	case RouteBalance:
		b.economyHandler.HandleBalance(ctx, chatID, userID)
	case RouteTransactions:
		b.economyHandler.HandleTransactions(ctx, chatID, userID)
	case RouteHelp:
		b.sendMessage(chatID, helpText)
	default:
		log.WithFields(log.Fields{"cmd": cmd, "args": args}).Debug("unknown command")
	}
}

// handleNewMembers регистрирует вступивших участников и заводит им баланс.
func (b *Bot) handleNewMembers(ctx context.Context, newMembers []tgbotapi.User) {
	for _, user := range newMembers {
		if user.IsBot {
			continue
		}
		if err := b.memberService.Register(ctx, user.ID, user.UserName, user.FirstName, user.LastName); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Register failed")
		}
		if err := b.economyService.CreateBalance(ctx, user.ID); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("CreateBalance failed")
		}

		log.WithField("user", user.UserName).Info("Новый участник обработан")
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToChat отправляет сообщение в чат (для напоминаний).
func (b *Bot) SendMessageToChat(chatID int64, text string) {
	b.sendMessage(chatID, text)
}

// Маршруты команд
const (
	RouteUnknown = iota
	RouteCheckIn
	RouteHistory
	RouteBalance
	RouteTransactions
	RouteHelp
)

// Route возвращает маршрут для имени команды.
func Route(cmd string) int {
	switch cmd {
	case "签到", "signin", "checkin", "qd":
		return RouteCheckIn
	case "签到历史", "history":
		return RouteHistory
	case "积分", "points", "balance":
		return RouteBalance
	case "积分记录", "transactions":
		return RouteTransactions
	case "start", "help", "帮助":
		return RouteHelp
	}
	return RouteUnknown
}

// CommandParser парсит команды с префиксами !, . и /.
// Слова из bare распознаются и без префикса: в группе пишут просто «签到».
type CommandParser struct {
	validPrefixes []string
	bare          map[string]bool
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", "！", ".", "/"},
		bare:          map[string]bool{"签到": true, "签到历史": true},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
// Суффикс @botname у команды отбрасывается.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if i := strings.IndexByte(command, '@'); i > 0 {
		command = command[:i]
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	if !hasPrefix && !(p.bare[command] && len(args) == 0) {
		return "", nil, false
	}
	return command, args, true
}
