// Package economy — handlers.go обрабатывает команды !积分 (баланс) и !积分记录 (история).
package economy

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
)

// Handler обрабатывает команды экономики.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик команд баллов.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleBalance показывает баланс.
//
// Формат ответа:
//
//	💰 当前积分: 1,250积分
func (h *Handler) HandleBalance(ctx context.Context, chatID int64, userID int64) {
	balance, err := h.service.Balance(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения баланса")
		h.sendMessage(chatID, "❌ 查询积分失败")
		return
	}

	text := fmt.Sprintf("💰 当前%s: %s%s",
		h.service.PointName(), common.FormatNumber(balance), h.service.PointName())
	h.sendMessage(chatID, text)
}

// HandleTransactions показывает последние начисления.
func (h *Handler) HandleTransactions(ctx context.Context, chatID int64, userID int64) {
	history, err := h.service.GetTransactionHistory(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения транзакций")
		h.sendMessage(chatID, "❌ 查询积分记录失败")
		return
	}
	h.sendMessage(chatID, history)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
