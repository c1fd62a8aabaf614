// Package filters — chat.go решает, принимать ли сообщение.
// Разрешены основной чат отметок и личка участников этого чата.
package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Membership — реестр участников, которым разрешена личка.
type Membership interface {
	IsMember(ctx context.Context, userID int64) (bool, error)
	EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error
}

// StatusLookup возвращает статус пользователя в чате по данным Telegram.
type StatusLookup func(chatID, userID int64) (string, error)

// Notifier отправляет отказ в доступе.
type Notifier func(chatID int64, text string)

type ChatFilter struct {
	signinChatID int64
	members      Membership
	lookup       StatusLookup
	notify       Notifier
	isAdmin      func(userID int64) bool
}

// NewChatFilter собирает фильтр поверх Telegram API.
func NewChatFilter(signinChatID int64, members Membership, bot *tgbotapi.BotAPI, isAdmin func(int64) bool) *ChatFilter {
	return &ChatFilter{
		signinChatID: signinChatID,
		members:      members,
		isAdmin:      isAdmin,
		lookup: func(chatID, userID int64) (string, error) {
			cm, err := bot.GetChatMember(tgbotapi.GetChatMemberConfig{
				ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
			})
			if err != nil {
				return "", err
			}
			return cm.Status, nil
		},
		notify: func(chatID int64, text string) {
			if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
				log.WithError(err).WithField("chat_id", chatID).Warn("failed to send deny message")
			}
		},
	}
}

// CheckAccess возвращает true, если сообщение нужно обработать.
func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
		}).Debug("nil message.From (канал или служебное сообщение)")
		return false
	}
	if f.signinChatID == 0 {
		log.WithField("component", "ChatFilter").Error("signinChatID is 0 (config bug)")
		return false
	}

	chatID := message.Chat.ID
	userID := message.From.ID
	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   chatID,
		"user_id":   userID,
	})

	// 1) Основной чат
	if chatID == f.signinChatID {
		return true
	}

	// 2) Остальные чаты, кроме лички, игнорируем
	if !message.Chat.IsPrivate() {
		logger.Debug("deny: посторонний чат")
		return false
	}

	if f.isAdmin != nil && f.isAdmin(userID) {
		return true
	}

	isMember, err := f.members.IsMember(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("member check failed (db)")
		return false
	}
	if isMember {
		return true
	}

	// 3) БД не знает пользователя: спрашиваем Telegram
	status, err := f.lookup(f.signinChatID, userID)
	if err != nil {
		logger.WithError(err).Error("member check failed (telegram GetChatMember)")
		return false
	}
	if !allowedStatus(status) {
		logger.WithField("tg_status", status).Info("deny: private (не участник чата)")
		f.notify(chatID, "❌ 本机器人仅对签到群成员开放")
		return false
	}

	if err := f.members.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		logger.WithError(err).Warn("failed to backfill member (allowing anyway)")
	}
	logger.WithField("tg_status", status).Info("allow: private (участник чата, добавлен в БД)")
	return true
}

func allowedStatus(status string) bool {
	switch status {
	case "creator", "administrator", "member", "restricted":
		return true
	}
	return false
}
