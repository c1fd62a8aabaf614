// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры;
// если рядом лежит .env, он подгружается заранее через godotenv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Бэкенды хранилища отметок
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// ID группового чата, в котором работает бот. В личке бот отвечает только участникам этого чата.
	SigninChatID int64 `envconfig:"SIGNIN_CHAT_ID" required:"true"`

	// --- Admin ---
	AdminIDsRaw       string  `envconfig:"ADMIN_IDS"`
	AdminIDs          []int64 `envconfig:"-"` // заполним вручную
	AdminPasswordHash string  `envconfig:"ADMIN_PASSWORD_HASH"`

	// --- Database ---
	// Реестр баллов и участники всегда живут в PostgreSQL.
	// В docker-compose хост БД — имя сервиса "postgres".
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"signin_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Часовой пояс, по которому считаются дни и недели отметок
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Asia/Shanghai"`

	// --- Bot runtime ---
	BotMaxInflight          int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Signin ---
	SigninStorage    string `envconfig:"SIGNIN_STORAGE" default:"file"`
	SigninPath       string `envconfig:"SIGNIN_PATH" default:"./data/signin/"`
	SigninSQLitePath string `envconfig:"SIGNIN_SQLITE_PATH" default:"./data/signin.db"`
	// Базовая награда — случайное число из [SIGNIN_MIN, SIGNIN_MAX)
	SigninMin           int    `envconfig:"SIGNIN_MIN" default:"20"`
	SigninMax           int    `envconfig:"SIGNIN_MAX" default:"50"`
	SigninPointName     string `envconfig:"SIGNIN_POINT_NAME" default:"积分"`
	SigninShowCalendar  bool   `envconfig:"SIGNIN_SHOW_CALENDAR" default:"false"`
	SigninReplyToSender bool   `envconfig:"SIGNIN_REPLY_TO_SENDER" default:"false"`
	// Шаблоны ответов с токенами %name%; пусто — встроенный текст
	SigninTemplateBase       string `envconfig:"SIGNIN_TEMPLATE_BASE"`
	SigninTemplateContinuous string `envconfig:"SIGNIN_TEMPLATE_CONTINUOUS"`
	SigninTemplateRepeat     string `envconfig:"SIGNIN_TEMPLATE_REPEAT"`
	// Cron-выражение ежедневного напоминания в чат; пусто — выключено
	SigninReminderCron string `envconfig:"SIGNIN_REMINDER_CRON" default:"0 9 * * *"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// IsAdmin сообщает, входит ли userID в ADMIN_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if c.SigninChatID == 0 {
		return fmt.Errorf("SIGNIN_CHAT_ID не задан или равен 0")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	switch c.SigninStorage {
	case StorageFile, StoragePostgres, StorageSQLite:
	default:
		return fmt.Errorf("SIGNIN_STORAGE должен быть file, postgres или sqlite, получено %q", c.SigninStorage)
	}
	if c.SigninMin < 0 || c.SigninMax < c.SigninMin {
		return fmt.Errorf("некорректные SIGNIN_MIN/SIGNIN_MAX: %d/%d", c.SigninMin, c.SigninMax)
	}
	if len(c.AdminIDs) > 0 && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH обязателен, если задан ADMIN_IDS")
	}
	return nil
}

// Load подгружает .env (если есть) и читает переменные окружения в Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("не удалось прочитать .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
