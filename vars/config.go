package vars

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 运行期配置，启动时加载一次后显式传递
type Config struct {
	HTTPAddr     string
	CookieSecure bool
	UploadMaxMB  int64

	DBDriver string
	DBDSN    string

	LLMProvider   string
	LLMModel      string
	OpenAIKey     string
	OpenAIBaseURL string
	OllamaPath    string

	SMTPHost      string
	SMTPPort      int
	EmailSender   string
	EmailPassword string

	ReminderEnabled    bool
	ReminderCron       string
	ReminderFallbackTo string
	AutoExpire         bool

	SessionTTL time.Duration

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	LogLevel  string
	LogFormat string
}

// Load 读取 .env（可选）与环境变量
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file failed: %w", err)
	}

	cfg := &Config{
		HTTPAddr: GetEnv("HTTP_ADDR", ":8081"),

		DBDriver: strings.ToLower(GetEnv("DB_DRIVER", SQLITE)),
		DBDSN:    GetEnv("DB_DSN", "licenses.db"),

		LLMProvider:   strings.ToLower(GetEnv("LLM_PROVIDER", OPENAI)),
		OpenAIKey:     GetEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: GetEnv("OPENAI_BASE_URL", ""),
		OllamaPath:    GetEnv("OLLAMA_PATH", "http://localhost:11434"),

		SMTPHost:      GetEnv("SMTP_HOST", "smtp.gmail.com"),
		EmailSender:   GetEnv("EMAIL_SENDER", ""),
		EmailPassword: GetEnv("EMAIL_PASSWORD", ""),

		ReminderCron:       GetEnv("REMINDER_CRON", "0 8 * * *"),
		ReminderFallbackTo: GetEnv("REMINDER_FALLBACK_TO", ""),

		AdminUsername: GetEnv("ADMIN_USERNAME", ""),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
		AdminEmail:    GetEnv("ADMIN_EMAIL", ""),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "text"),
	}

	defaultModel := GPT41MINI
	if cfg.LLMProvider == OLLAMA {
		defaultModel = QWEN7B
	}
	cfg.LLMModel = GetEnv("LLM_MODEL", defaultModel)

	var err error
	if cfg.SMTPPort, err = strconv.Atoi(GetEnv("SMTP_PORT", "465")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	maxMB, err := strconv.Atoi(GetEnv("UPLOAD_MAX_MB", "32"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB: %w", err)
	}
	cfg.UploadMaxMB = int64(maxMB)
	if cfg.ReminderEnabled, err = strconv.ParseBool(GetEnv("REMINDER_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_ENABLED: %w", err)
	}
	if cfg.AutoExpire, err = strconv.ParseBool(GetEnv("AUTO_EXPIRE", "false")); err != nil {
		return nil, fmt.Errorf("invalid AUTO_EXPIRE: %w", err)
	}
	if cfg.CookieSecure, err = strconv.ParseBool(GetEnv("COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(GetEnv("SESSION_TTL", "168h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	switch cfg.DBDriver {
	case SQLITE, POSTGRES:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
	switch cfg.LLMProvider {
	case OPENAI, OLLAMA:
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s", cfg.LLMProvider)
	}

	return cfg, nil
}
