// Package admin — service.go содержит аутентификацию, сессии
// и состояние ожидания пароля в личке.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"serotonyl.ru/signin-bot/internal/common"
	"serotonyl.ru/signin-bot/internal/config"
)

// passwordPromptTTL — сколько ждём пароль после приглашения.
const passwordPromptTTL = 5 * time.Minute

// Service управляет доступом администраторов.
type Service struct {
	repo *Repository
	cfg  *config.Config
	now  func() time.Time

	prompts   map[int64]time.Time // user_id -> срок ожидания пароля
	promptsMu sync.Mutex
}

// NewService создаёт сервис админ-доступа.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		cfg:     cfg,
		now:     time.Now,
		prompts: make(map[int64]time.Time),
	}
}

// IsAdmin проверяет, указан ли пользователь в ADMIN_IDS.
func (s *Service) IsAdmin(userID int64) bool {
	return s.cfg.IsAdmin(userID)
}

// VerifyPassword проверяет пароль по Argon2id и открывает сессию.
// После MaxFailedLogins неудач за FailedLoginsSpan вход блокируется.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	failed, err := s.repo.CountFailedAttempts(ctx, userID, FailedLoginsSpan)
	if err != nil {
		return err
	}
	if failed >= MaxFailedLogins {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)
	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать попытку входа")
	}
	if !match {
		return common.ErrWrongPassword
	}

	session := &AdminSession{
		UserID:       userID,
		SessionToken: generateSecureToken(),
		ExpiresAt:    s.now().Add(SessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Администратор вошёл")
	return nil
}

// HasActiveSession проверяет сессию и продлевает отметку активности.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	ok, err := s.repo.HasActiveSession(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка проверки сессии")
		return false
	}
	if ok {
		_ = s.repo.UpdateActivity(ctx, userID)
	}
	return ok
}

// Logout закрывает все сессии администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeactivateSessions(ctx, userID)
}

// CleanupSessions закрывает просроченные сессии. Вызывается планировщиком.
func (s *Service) CleanupSessions(ctx context.Context) (int64, error) {
	return s.repo.DeactivateExpired(ctx)
}

// AwaitPassword запоминает, что следующее сообщение — пароль.
func (s *Service) AwaitPassword(userID int64) {
	s.promptsMu.Lock()
	defer s.promptsMu.Unlock()
	s.prompts[userID] = s.now().Add(passwordPromptTTL)
}

// TakePasswordPrompt сбрасывает ожидание пароля и сообщает, было ли оно активно.
func (s *Service) TakePasswordPrompt(userID int64) bool {
	s.promptsMu.Lock()
	defer s.promptsMu.Unlock()

	deadline, ok := s.prompts[userID]
	if !ok {
		return false
	}
	delete(s.prompts, userID)
	return s.now().Before(deadline)
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expected)))

	// Сравнение в постоянном времени
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// generateSecureToken генерирует случайный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
