// Package signin — handlers.go обрабатывает команды 签到 и 签到历史.
package signin

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/config"
)

// Handler обрабатывает команды отметок.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	cfg     *config.Config
}

// NewHandler создаёт обработчик команд отметок.
func NewHandler(service *Service, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{service: service, bot: bot, cfg: cfg}
}

// HandleCheckIn обрабатывает команду !签到.
//
// Формат ответа (серия > 1):
//
//	上午好！签到成功，获得 32积分。
//
//	因您本周连续签到 3 天，额外奖励您 10% 的积分。因此一共获得：35积分
func (h *Handler) HandleCheckIn(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	reply, err := h.service.CheckIn(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка отметки")
		h.reply(message, failureText(err))
		return
	}
	h.reply(message, reply.Text)
}

// HandleHistory обрабатывает команду !签到历史.
func (h *Handler) HandleHistory(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	text, err := h.service.History(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения истории отметок")
		h.reply(message, failureText(err))
		return
	}
	h.reply(message, text)
}

func failureText(err error) string {
	if errors.Is(err, common.ErrLedgerUnavailable) {
		return "❌ 签到已记录，但积分发放失败，请联系管理员"
	}
	return "❌ 签到服务暂时不可用，请稍后再试"
}

// reply отправляет ответ; при SIGNIN_REPLY_TO_SENDER цитирует исходное сообщение.
func (h *Handler) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	if h.cfg.SigninReplyToSender {
		msg.ReplyToMessageID = message.MessageID
	}
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", message.Chat.ID).Error("Ошибка отправки сообщения")
	}
}
