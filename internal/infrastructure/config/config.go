package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devJWTSecret = "dev-secret-change-me"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	BodyLimit string `env:"BODY_LIMIT, default=110M"`
	// CORSOrigins is a comma separated allow-list.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	JWT      JWTConfig
	Backend  BackendConfig
	Chat     ChatConfig
	Uploads  UploadsConfig
	Session  SessionConfig
	Fixtures FixturesConfig

	Notifications NotificationsConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL, default=24h"`
}

// BackendConfig points at the REST API preferred over local data. An empty
// URL runs the service fully offline.
type BackendConfig struct {
	URL          string        `env:"BACKEND_URL"`
	ProbePath    string        `env:"BACKEND_PROBE_PATH,    default=/health"`
	Timeout      time.Duration `env:"BACKEND_TIMEOUT,       default=10s"`
	ProbeTimeout time.Duration `env:"BACKEND_PROBE_TIMEOUT, default=2s"`
}

type ChatConfig struct {
	URL          string        `env:"CHAT_URL,         default=https://api.openai.com/v1/chat/completions"`
	APIKey       string        `env:"CHAT_API_KEY"`
	Model        string        `env:"CHAT_MODEL,       default=gpt-3.5-turbo"`
	Temperature  float64       `env:"CHAT_TEMPERATURE, default=0.7"`
	MaxTokens    int           `env:"CHAT_MAX_TOKENS,  default=500"`
	SystemPrompt string        `env:"CHAT_SYSTEM_PROMPT"`
	Timeout      time.Duration `env:"CHAT_TIMEOUT,     default=30s"`
}

type UploadsConfig struct {
	Dir         string `env:"UPLOADS_DIR,           default=uploads"`
	MaxFiles    int    `env:"UPLOADS_MAX_FILES,     default=10"`
	MaxFileSize int64  `env:"UPLOADS_MAX_FILE_SIZE, default=10485760"`
}

type SessionConfig struct {
	TTL            time.Duration `env:"SESSION_TTL,     default=168h"`
	Prefix         string        `env:"SESSION_PREFIX,  default=visago"`
	DefaultCountry string        `env:"DEFAULT_COUNTRY, default=FR"`
}

type NotificationsConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

type FixturesConfig struct {
	BcryptCost int `env:"FIXTURES_BCRYPT_COST, default=10"`
}

// MongoConfig is optional. Without a URI, document metadata stays in memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=visa_assistant"`
}

// RedisConfig is optional. Without an address, sessions stay in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("config: JWT_SECRET is required outside development")
		}
		c.JWT.Secret = devJWTSecret
	}
	if c.Uploads.MaxFiles <= 0 || c.Uploads.MaxFileSize <= 0 {
		return errors.New("config: upload limits must be positive")
	}
	if c.Chat.MaxTokens <= 0 {
		return errors.New("config: CHAT_MAX_TOKENS must be positive")
	}
	return nil
}
