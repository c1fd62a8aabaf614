// Package postgres — queries.go содержит выполнение отдельных миграций.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration — одна SQL-миграция схемы.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// ValidateMigrations проверяет, что версии положительны и строго возрастают.
func ValidateMigrations(migrations []Migration) error {
	prev := 0
	for _, m := range migrations {
		if m.Version <= prev {
			return fmt.Errorf("миграция %q: версия %d должна быть больше %d", m.Name, m.Version, prev)
		}
		if m.SQL == "" {
			return fmt.Errorf("миграция %d: пустой SQL", m.Version)
		}
		prev = m.Version
	}
	return nil
}

// ExecMigrationSQL выполняет миграцию в транзакции.
// Возвращает false, если версия уже применена.
func ExecMigrationSQL(ctx context.Context, pool *pgxpool.Pool, version int, sql string) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки миграции: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := tx.Exec(ctx, sql); err != nil {
		return false, fmt.Errorf("ошибка выполнения: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version) VALUES ($1)", version,
	); err != nil {
		return false, fmt.Errorf("ошибка записи версии миграции: %w", err)
	}

	return true, tx.Commit(ctx)
}
