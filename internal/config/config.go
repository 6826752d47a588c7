package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Client       ClientConfig       `mapstructure:"client"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Token        TokenConfig        `mapstructure:"token"`
	Notification NotificationConfig `mapstructure:"notification"`
	Line         LineConfig         `mapstructure:"line"`
	OpenAI       OpenAIConfig       `mapstructure:"openai"`
	Log          LogConfig          `mapstructure:"log"`
	Telemetry    TelemetryConfig    `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
	// APIKey is the pre-shared secret operators and cron triggers present in X-API-Key.
	APIKey string `mapstructure:"api_key"`
	// PublicBaseURL is the externally reachable origin used for quiz deep links.
	PublicBaseURL       string `mapstructure:"public_base_url" validate:"omitempty,url"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"min=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"min=0"`
	// QuizTemplate overrides the embedded quiz page.
	QuizTemplate string `mapstructure:"quiz_template"`
}

// ClientConfig is used by CLI commands that trigger jobs on a running server.
type ClientConfig struct {
	ServerURL      string `mapstructure:"server_url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=0"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// RedisConfig configures the send-claim store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

type TokenConfig struct {
	Secret   string `mapstructure:"secret" validate:"omitempty,min=32"`
	TTLHours int    `mapstructure:"ttl_hours" validate:"min=1"`
}

type NotificationConfig struct {
	Channel            string `mapstructure:"channel" validate:"oneof=line"`
	Timezone           string `mapstructure:"timezone" validate:"timezone"`
	ToleranceMinutes   int    `mapstructure:"tolerance_minutes" validate:"min=0,max=720"`
	SendTimeoutSeconds int    `mapstructure:"send_timeout_seconds" validate:"min=1"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"min=0"`
	RetryLookbackHours int    `mapstructure:"retry_lookback_hours" validate:"min=1"`
	MaxErrors          int    `mapstructure:"max_errors" validate:"min=1"`
	RatePerSecond      int    `mapstructure:"rate_per_second" validate:"min=0"`
	QuizPath           string `mapstructure:"quiz_path"`
}

type LineConfig struct {
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
	SenderName    string `mapstructure:"sender_name"`
}

type OpenAIConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
	// CacheDir keeps generated quizzes on disk when set.
	CacheDir string `mapstructure:"cache_dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type TelemetryConfig struct {
	ServiceName  string  `mapstructure:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SentryDSN    string  `mapstructure:"sentry_dsn"`
	SampleRatio  float64 `mapstructure:"sample_ratio" validate:"min=0,max=1"`
}

// Location returns the zone used to interpret notification times and calendar days.
func (c NotificationConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c NotificationConfig) Tolerance() time.Duration {
	return time.Duration(c.ToleranceMinutes) * time.Minute
}

func (c NotificationConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}

func (c NotificationConfig) RetryLookback() time.Duration {
	return time.Duration(c.RetryLookbackHours) * time.Hour
}

func (c TokenConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/memoquiz")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.public_base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("client.server_url", "http://localhost:8080")
	v.SetDefault("client.timeout_seconds", 120)
	v.SetDefault("client.retry_attempts", 2)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "memoquiz")
	v.SetDefault("database.username", "user")
	v.SetDefault("redis.db", 0)
	v.SetDefault("token.ttl_hours", 24)
	v.SetDefault("notification.channel", "line")
	v.SetDefault("notification.timezone", "Asia/Tokyo")
	v.SetDefault("notification.tolerance_minutes", 30)
	v.SetDefault("notification.send_timeout_seconds", 10)
	v.SetDefault("notification.max_retries", 3)
	v.SetDefault("notification.retry_lookback_hours", 24)
	v.SetDefault("notification.max_errors", 20)
	v.SetDefault("notification.rate_per_second", 10)
	v.SetDefault("notification.quiz_path", "/quiz")
	v.SetDefault("line.sender_name", "Memo Quiz")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_retry_attempts", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("telemetry.service_name", "memoquiz")
	v.SetDefault("telemetry.sample_ratio", 1.0)

	// Secrets are bound to environment variables so that they stay out of config files
	envBindings := map[string]string{
		"server.api_key":       "MEMOQUIZ_API_KEY",
		"token.secret":         "TOKEN_SECRET",
		"database.password":    "DB_PASSWORD",
		"redis.password":       "REDIS_PASSWORD",
		"line.channel_secret":  "LINE_CHANNEL_SECRET",
		"line.channel_token":   "LINE_CHANNEL_TOKEN",
		"openai.api_key":       "OPENAI_API_KEY",
		"telemetry.sentry_dsn": "SENTRY_DSN",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// RequireServerSecrets checks the settings that only the HTTP server needs.
func (cfg *Config) RequireServerSecrets() error {
	var missing []string
	if cfg.Server.APIKey == "" {
		missing = append(missing, "MEMOQUIZ_API_KEY")
	}
	if cfg.Token.Secret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}
	if cfg.Line.ChannelSecret == "" {
		missing = append(missing, "LINE_CHANNEL_SECRET")
	}
	if cfg.Line.ChannelToken == "" {
		missing = append(missing, "LINE_CHANNEL_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
