package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Duration parses "10s", "5m" or a bare number of seconds.
type Duration time.Duration

func (d *Duration) SetValue(s string) error {
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func parseDuration(s string) (time.Duration, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Auth      AuthConfig
	DB        DBConfig
	Simulator SimulatorConfig
	Gemini    GeminiConfig
	Firebase  FirebaseConfig
	Redis     RedisConfig
	Slack     SlackConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	SeedFile string `env:"SEED_FILE" env-default:""`
}

type HTTPConfig struct {
	Addr         string   `env:"HTTP_ADDR" env-default:""`
	Port         string   `env:"PORT" env-default:"8080"`
	GinMode      string   `env:"GIN_MODE" env-default:"release"`
	ReadTimeout  Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// ListenAddr is Addr when set, otherwise ":" + Port.
func (h HTTPConfig) ListenAddr() string {
	if h.Addr != "" {
		return h.Addr
	}
	return ":" + h.Port
}

type AuthConfig struct {
	Secret   string   `env:"JWT_SECRET_KEY" env-default:""`
	TokenTTL Duration `env:"JWT_TTL" env-default:"24h"`
}

type DBConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `env:"DB_DSN" env-default:"file:checksync?mode=memory&cache=shared"`
}

type SimulatorConfig struct {
	Enabled     bool    `env:"SIMULATOR_ENABLED" env-default:"true"`
	Spec        string  `env:"SIMULATOR_SPEC" env-default:"@every 5s"`
	Probability float64 `env:"SIMULATOR_PROBABILITY" env-default:"0.05"`
	ActingUser  string  `env:"SIMULATOR_ACTING_USER" env-default:"u1"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY" env-default:""`
	Model  string `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}

type FirebaseConfig struct {
	ProjectID       string `env:"FIREBASE_PROJECT_ID" env-default:""`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS" env-default:""`
	PushEnabled     bool   `env:"FCM_ENABLED" env-default:"false"`
}

func (f FirebaseConfig) Enabled() bool { return f.ProjectID != "" }

type RedisConfig struct {
	URL      string `env:"REDIS_URL" env-default:""`
	Addr     string `env:"REDIS_ADDR" env-default:""`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

func (r RedisConfig) Enabled() bool { return r.URL != "" || r.Addr != "" }

type SlackConfig struct {
	Token   string `env:"SLACK_BOT_TOKEN" env-default:""`
	Channel string `env:"SLACK_CHANNEL" env-default:""`
}

func (s SlackConfig) Enabled() bool { return s.Token != "" && s.Channel != "" }

const devSecret = "checksync-dev-secret"

// Load reads envFile (or .env when empty) if it exists, then the process
// environment.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
		slog.Debug("no env file", "path", envFile)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Auth.Secret == "" {
		if cfg.App.Env != "dev" {
			return fmt.Errorf("JWT_SECRET_KEY is required when APP_ENV=%s", cfg.App.Env)
		}
		cfg.Auth.Secret = devSecret
	}
	switch cfg.DB.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", cfg.DB.Driver)
	}
	if p := cfg.Simulator.Probability; p < 0 || p > 1 {
		return fmt.Errorf("SIMULATOR_PROBABILITY must be within [0,1], got %v", p)
	}
	return nil
}
