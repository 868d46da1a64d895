package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	TelegramBotToken string `koanf:"telegram_bot_token"`

	TelegramAPIID    int    `koanf:"telegram_api_id" validate:"required"`
	TelegramAPIHash  string `koanf:"telegram_api_hash" validate:"required"`
	TelegramPhone    string `koanf:"telegram_phone" validate:"required"`
	TelegramPassword string `koanf:"telegram_password"`
	SessionPath      string `koanf:"session_path" validate:"required"`

	DatabasePath      string  `koanf:"database_path" validate:"required"`
	NotifyChatID      int64   `koanf:"notify_chat_id" validate:"required"`
	AdminID           int64   `koanf:"admin_id" validate:"required"`
	AllowedUsers      []int64 `koanf:"-"`
	HTTPPort          string  `koanf:"http_port" validate:"required,numeric"`
	ReconcileInterval int     `koanf:"reconcile_interval" validate:"gte=0"`
	AppEnv            AppEnv  `koanf:"app_env"`
}

var configFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

func Load() (*Config, error) {
	// .env only seeds the process environment; real env vars win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, oops.With("env_file", ".env").Wrap(err)
		}
	}

	k := koanf.New(".")

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// allowed_users arrives as a comma list from env vars and as a slice from config files
	if allowedUsers := k.Get("allowed_users"); allowedUsers != nil {
		switch v := allowedUsers.(type) {
		case string:
			cfg.AllowedUsers = ParseAllowedUsers(v)
		case []interface{}:
			cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				default:
					return 0, false
				}
			})
		}
	}

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, oops.With("context", "validating config").Wrap(err)
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	defaults := map[string]any{
		"session_path":       "./data/session.json",
		"database_path":      "./data/monitor.db",
		"http_port":          "8080",
		"reconcile_interval": 3600,
		"app_env":            "production",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}
}

// IsAdmin reports whether userID may use the administrative commands.
func (c *Config) IsAdmin(userID int64) bool {
	return userID == c.AdminID || lo.Contains(c.AllowedUsers, userID)
}

// LogLevel returns the console log level for the configured environment.
func (c *Config) LogLevel() slog.Level {
	switch c.AppEnv {
	case AppEnvLocal, AppEnvDevelopment:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ParseAllowedUsers parses comma-separated user IDs string into []int64
func ParseAllowedUsers(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
