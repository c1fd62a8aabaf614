// Package economy — service.go содержит бизнес-логику баллов:
// начисление наград за отметки, баланс и история начислений.
package economy

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/signin-bot/internal/common"
)

// historyLimit — сколько последних начислений показывать.
const historyLimit = 10

// Service управляет баллами пользователей.
type Service struct {
	repo      *Repository
	pointName string         // Название баллов, например "积分"
	loc       *time.Location // Часовой пояс для дат в истории
}

// NewService создаёт новый сервис экономики.
func NewService(repo *Repository, pointName string, loc *time.Location) *Service {
	return &Service{repo: repo, pointName: pointName, loc: loc}
}

// PointName возвращает название баллов.
func (s *Service) PointName() string {
	return s.pointName
}

// Credit начисляет награду за отметку. Реализует signin.Ledger.
func (s *Service) Credit(ctx context.Context, userID int64, amount int64, description string) error {
	return s.AddBalance(ctx, userID, amount, TxTypeSigninReward, description)
}

// Balance возвращает текущий баланс. Реализует signin.Ledger.
func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// AddBalance начисляет баллы пользователю.
func (s *Service) AddBalance(ctx context.Context, userID int64, amount int64, txType, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if err := s.repo.AddBalance(ctx, userID, amount, txType, description); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    txType,
	}).Debug("Баллы начислены")
	return nil
}

// CreateBalance создаёт нулевой баланс для нового участника.
func (s *Service) CreateBalance(ctx context.Context, userID int64) error {
	return s.repo.CreateBalance(ctx, userID)
}

// GetTransactionHistory возвращает отформатированную историю последних начислений.
func (s *Service) GetTransactionHistory(ctx context.Context, userID int64) (string, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, historyLimit)
	if err != nil {
		return "", err
	}
	return FormatHistory(transactions, s.pointName, s.loc), nil
}

// FormatHistory форматирует список транзакций для ответа в чат.
//
// Пример:
//
//	📋 最近 2 条积分记录:
//
//	1. 2024-01-02 09:00 | +35积分 | 签到奖励 - 本周连续2天
//	2. 2024-01-01 09:00 | +20积分 | 签到奖励
func FormatHistory(transactions []*Transaction, pointName string, loc *time.Location) string {
	if len(transactions) == 0 {
		return fmt.Sprintf("📋 暂无%s记录", pointName)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 最近 %d 条%s记录:\n\n", len(transactions), pointName)
	for i, tx := range transactions {
		fmt.Fprintf(&sb, "%d. %s | %s | %s\n",
			i+1,
			common.FormatDateTime(tx.CreatedAt, loc),
			common.FormatSignedPoints(tx.Amount, pointName),
			tx.Description,
		)
	}
	return sb.String()
}
