package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	SessionSecret string
	SessionTTL    string

	AppBaseURL string
	QRTokenTTL string
	QRDir      string

	Log      string
	LogLevel string
	Env      string // dev|prod
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    def(os.Getenv("SESSION_TTL"), "12h"),

		AppBaseURL: def(os.Getenv("APP_BASE_URL"), "http://localhost:8080"),
		QRTokenTTL: def(os.Getenv("QR_TOKEN_TTL"), "15m"),
		QRDir:      def(os.Getenv("QR_DIR"), "public/qrcodes"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критичные: БД
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		warnings = append(warnings, "SESSION_SECRET is empty")
	}

	if _, e := time.ParseDuration(c.QRTokenTTL); e != nil {
		warnings = append(warnings, "QR_TOKEN_TTL is not a valid duration, using default 15m")
	}
	if _, e := time.ParseDuration(c.SessionTTL); e != nil {
		warnings = append(warnings, "SESSION_TTL is not a valid duration, using default 12h")
	}

	// PORT
	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// GetQRTokenTTL — окно действия одноразового токена входа.
func (c *Config) GetQRTokenTTL() time.Duration {
	d, err := time.ParseDuration(c.QRTokenTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// GetSessionTTL — срок жизни сессионной куки.
func (c *Config) GetSessionTTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
