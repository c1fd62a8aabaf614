// Package admin — handlers.go обрабатывает админ-команды в личных сообщениях.
// Поток: проверка ADMIN_IDS → пароль (если нет сессии) → команда.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/features/economy"
	"serotonyl.ru/signin-bot/internal/features/members"
	"serotonyl.ru/signin-bot/internal/features/signin"
)

const helpText = `🛠 Админ-команды:
/inspect <id|@username> — состояние отметок
/reset <id|@username> — сбросить отметки
/grant <id|@username> <сумма> — начислить баллы
/logout — завершить сессию`

// Handler обрабатывает админ-команды.
type Handler struct {
	service        *Service
	memberService  *members.Service
	signinService  *signin.Service
	economyService *economy.Service
	bot            *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-команд.
func NewHandler(
	service *Service,
	memberService *members.Service,
	signinService *signin.Service,
	economyService *economy.Service,
	bot *tgbotapi.BotAPI,
) *Handler {
	return &Handler{
		service:        service,
		memberService:  memberService,
		signinService:  signinService,
		economyService: economyService,
		bot:            bot,
	}
}

// HandleAdminMessage обрабатывает сообщение администратора в DM.
// Возвращает false, если отправитель не администратор.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	cmd := ParseCommand(text)

	if cmd.Name == "" {
		if h.service.TakePasswordPrompt(userID) {
			h.login(ctx, chatID, userID, strings.TrimSpace(text))
			return true
		}
		return false
	}
	if !isAdminCommand(cmd.Name) {
		return false
	}

	if cmd.Name == "login" {
		if len(cmd.Args) == 0 {
			h.service.AwaitPassword(userID)
			h.sendMessage(chatID, "🔐 Введите пароль:")
			return true
		}
		h.login(ctx, chatID, userID, strings.Join(cmd.Args, " "))
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.service.AwaitPassword(userID)
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-командам:")
		return true
	}

	switch cmd.Name {
	case "inspect":
		h.inspect(ctx, chatID, cmd.Args)
	case "reset":
		h.reset(ctx, chatID, cmd.Args)
	case "grant":
		h.grant(ctx, chatID, cmd.Args)
	case "logout":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка завершения сессии")
		}
		h.sendMessage(chatID, "👋 Сессия завершена")
	default:
		h.sendMessage(chatID, helpText)
	}
	return true
}

func isAdminCommand(name string) bool {
	switch name {
	case "login", "logout", "admin", "inspect", "reset", "grant":
		return true
	}
	return false
}

// ParseCommand разбирает "/grant @user 100" в Command{Name: "grant", Args: [...]}.
// Текст без префикса "/" даёт пустое имя.
func ParseCommand(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}
	}
	name := strings.TrimPrefix(fields[0], "/")
	// /inspect@botname
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return Command{Name: strings.ToLower(name), Args: fields[1:]}
}

func (h *Handler) login(ctx context.Context, chatID, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	switch {
	case err == nil:
		h.sendMessage(chatID, "✅ Доступ открыт на 24 часа\n\n"+helpText)
	case errors.Is(err, common.ErrTooManyAttempts):
		h.sendMessage(chatID, "⛔ Слишком много попыток, подождите 1 час")
	case errors.Is(err, common.ErrWrongPassword):
		h.sendMessage(chatID, "❌ Неверный пароль")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка входа администратора")
		h.sendMessage(chatID, "❌ Ошибка входа")
	}
}

// resolveUser принимает числовой ID без обращения к members:
// у пользователя могут быть отметки, даже если он не попал в реестр.
func (h *Handler) resolveUser(ctx context.Context, ref string) (int64, string, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, ref, nil
	}
	m, err := h.memberService.Resolve(ctx, ref)
	if err != nil {
		return 0, "", err
	}
	return m.UserID, m.DisplayName(), nil
}

func (h *Handler) inspect(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		h.sendMessage(chatID, "Использование: /inspect <id|@username>")
		return
	}
	userID, name, err := h.resolveUser(ctx, args[0])
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	text, err := h.signinService.Inspect(ctx, userID)
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("👤 %s\n\n%s", name, text))
}

func (h *Handler) reset(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		h.sendMessage(chatID, "Использование: /reset <id|@username>")
		return
	}
	userID, name, err := h.resolveUser(ctx, args[0])
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	if err := h.signinService.Reset(ctx, userID); err != nil {
		h.sendError(chatID, err)
		return
	}
	log.WithField("target_id", userID).Info("Отметки пользователя сброшены администратором")
	h.sendMessage(chatID, fmt.Sprintf("♻️ Отметки %s сброшены", name))
}

func (h *Handler) grant(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		h.sendMessage(chatID, "Использование: /grant <id|@username> <сумма>")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом")
		return
	}
	userID, name, err := h.resolveUser(ctx, args[0])
	if err != nil {
		h.sendError(chatID, err)
		return
	}
	if err := h.economyService.AddBalance(ctx, userID, amount, economy.TxTypeAdminGive, "Начисление администратором"); err != nil {
		h.sendError(chatID, err)
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ %s начислено %s",
		name, common.FormatSignedPoints(amount, h.economyService.PointName())))
}

func (h *Handler) sendError(chatID int64, err error) {
	if errors.Is(err, common.ErrUserNotFound) {
		h.sendMessage(chatID, "❌ Пользователь не найден")
		return
	}
	log.WithError(err).Error("Ошибка админ-команды")
	h.sendMessage(chatID, "❌ Ошибка: "+err.Error())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
