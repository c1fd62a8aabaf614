// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// maxLoggedRunes — сколько символов текста попадает в лог.
const maxLoggedRunes = 50

// LogMessage логирует входящее сообщение: user_id, chat_id, username и начало текста.
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}

	log.WithFields(log.Fields{
		"user_id":   message.From.ID,
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
		"username":  message.From.UserName,
		"text":      Truncate(message.Text, maxLoggedRunes),
	}).Debug("Входящее сообщение")
}

// Truncate обрезает строку по символам, а не по байтам:
// в чате пишут по-китайски, и срез по байтам ломает UTF-8.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
