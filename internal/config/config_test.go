package config

import (
	"reflect"
	"testing"
)

func validConfig() *Config {
	return &Config{
		SigninChatID:            -100,
		BotMaxInflight:          64,
		BotUpdateTimeoutSeconds: 60,
		DBMaxConns:              25,
		DBMinConns:              5,
		SigninStorage:           StorageFile,
		SigninMin:               20,
		SigninMax:               50,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"по умолчанию", func(*Config) {}, false},
		{"sqlite", func(c *Config) { c.SigninStorage = StorageSQLite }, false},
		{"postgres", func(c *Config) { c.SigninStorage = StoragePostgres }, false},
		{"неизвестное хранилище", func(c *Config) { c.SigninStorage = "redis" }, true},
		{"нет чата", func(c *Config) { c.SigninChatID = 0 }, true},
		{"min больше max", func(c *Config) { c.SigninMin, c.SigninMax = 60, 50 }, true},
		{"min равен max", func(c *Config) { c.SigninMin, c.SigninMax = 30, 30 }, false},
		{"отрицательный min", func(c *Config) { c.SigninMin = -1 }, true},
		{"админы без пароля", func(c *Config) { c.AdminIDs = []int64{1} }, true},
		{"админы с паролем", func(c *Config) { c.AdminIDs = []int64{1}; c.AdminPasswordHash = "$argon2id$..." }, false},
		{"min conns больше max", func(c *Config) { c.DBMinConns = 30 }, true},
		{"нулевой inflight", func(c *Config) { c.BotMaxInflight = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseInt64CSV(t *testing.T) {
	tests := []struct {
		in      string
		want    []int64
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"42", []int64{42}, false},
		{"1, 2,,3 ", []int64{1, 2, 3}, false},
		{"-100123", []int64{-100123}, false},
		{"1,abc", nil, true},
	}
	for _, tt := range tests {
		got, err := parseInt64CSV(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseInt64CSV(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseInt64CSV(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	c := &Config{AdminIDs: []int64{10, 20}}
	if !c.IsAdmin(20) || c.IsAdmin(30) {
		t.Error("IsAdmin работает неверно")
	}
}

func TestDatabaseDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: 5432, DBName: "signin_bot", DBSSLMode: "disable"}
	if got := c.DatabaseDSN(); got != "postgres://u:p@h:5432/signin_bot?sslmode=disable" {
		t.Errorf("DatabaseDSN() = %q", got)
	}
}
