package app

import (
	"testing"

	"serotonyl.ru/signin-bot/internal/db/postgres"
)

func TestMigrationsAreOrdered(t *testing.T) {
	if err := postgres.ValidateMigrations(Migrations); err != nil {
		t.Fatal(err)
	}
}
