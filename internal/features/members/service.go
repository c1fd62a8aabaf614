// Package members — service.go регистрирует участников и проверяет членство.
package members

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Service управляет участниками чата.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис участников.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register добавляет участника или обновляет его данные при повторном вступлении.
func (s *Service) Register(ctx context.Context, userID int64, username, firstName, lastName string) error {
	if err := s.repo.Upsert(ctx, &Member{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
	}).Debug("Участник зарегистрирован")
	return nil
}

// EnsureMember регистрирует пользователя, если его ещё нет в базе.
func (s *Service) EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.Register(ctx, userID, username, firstName, lastName)
}

// IsMember проверяет, известен ли пользователь боту. Используется для доступа в личку.
func (s *Service) IsMember(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// Resolve находит участника по числовому ID или @username.
func (s *Service) Resolve(ctx context.Context, ref string) (*Member, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return s.repo.GetByUserID(ctx, id)
	}
	return s.repo.GetByUsername(ctx, strings.TrimPrefix(ref, "@"))
}
