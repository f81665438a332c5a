package config

import (
	"strings"
	"time"
)

type AppConfig struct {
	ListenAddr     string        `yaml:"listen_addr" env:"CG_LISTEN_ADDR" env-default:"0.0.0.0:3001"`
	AppEnv         string        `yaml:"app_env" env:"CG_APP_ENV" env-default:"development"`
	LogLevel       string        `yaml:"log_level" env:"CG_LOG_LEVEL" env-default:"info"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CG_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:3001,http://localhost:5500"`
	Store          StoreConfig   `yaml:"store"`
	Mail           MailConfig    `yaml:"mail"`
	Reports        ReportsConfig `yaml:"reports"`
	HTTP           HTTPConfig    `yaml:"http"`
}

// IsProduction gates error-detail disclosure: production responses carry a
// generic message, every other environment exposes the underlying error.
func (c *AppConfig) IsProduction() bool {
	if c == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

type StoreConfig struct {
	URI            string        `yaml:"uri" env:"CG_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `yaml:"database" env:"CG_MONGO_DATABASE" env-default:"campusguard"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CG_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	RetryBackoff   time.Duration `yaml:"retry_backoff" env:"CG_MONGO_RETRY_BACKOFF" env-default:"5s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"CG_MONGO_PING_TIMEOUT" env-default:"2s"`
}

type MailConfig struct {
	Host     string   `yaml:"host" env:"CG_SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int      `yaml:"port" env:"CG_SMTP_PORT" env-default:"587"`
	Username string   `yaml:"username" env:"CG_SMTP_USERNAME"`
	Password string   `yaml:"password" env:"CG_SMTP_PASSWORD"`
	From     string   `yaml:"from" env:"CG_MAIL_FROM"`
	To       []string `yaml:"to" env:"CG_MAIL_TO" env-separator:","`
}

type ReportsConfig struct {
	// DateRequired adds "date" to the required-field set. Default keeps the
	// field optional; the submission timestamp is used when it is absent.
	DateRequired bool `yaml:"date_required" env:"CG_REPORTS_DATE_REQUIRED" env-default:"false"`
	ListLimit    int  `yaml:"list_limit" env:"CG_REPORTS_LIST_LIMIT" env-default:"50"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"CG_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"CG_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CG_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}
