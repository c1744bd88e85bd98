// Package config загружает настройки приложения из YAML-файла, .env и переменных окружения.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Режимы получения обновлений Telegram
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Типы хранилища
const (
	StorageMemory   = "memory"
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

// Duration длительность, записываемая в YAML строкой вида "30m"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std значение как time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token        string   `yaml:"token"`
		Mode         string   `yaml:"mode"`
		WebhookURL   string   `yaml:"webhook_url"`
		ListenAddr   string   `yaml:"listen_addr"`
		PollInterval Duration `yaml:"poll_interval"`
	} `yaml:"telegram_bot"`
	Database struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Storage struct {
		// Type хранилище сессий и архива результатов
		Type string `yaml:"type"`
		// File путь к JSON-файлу сессий при Type == json
		File string `yaml:"file"`
	} `yaml:"storage"`
	Session struct {
		TTL           Duration `yaml:"ttl"`
		PurgeInterval Duration `yaml:"purge_interval"`
	} `yaml:"session"`
	Content struct {
		// Пустой путь означает встроенные вопросы и FAQ
		Questions string `yaml:"questions"`
		FAQ       string `yaml:"faq"`
	} `yaml:"content"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.TelegramBot.Mode = ModePolling
	cfg.TelegramBot.ListenAddr = ":8443"
	cfg.TelegramBot.PollInterval = Duration(10 * time.Second)
	cfg.Database.Port = "5432"
	cfg.Database.SSLMode = "disable"
	cfg.Storage.Type = StorageMemory
	cfg.Storage.File = "data/sessions.json"
	cfg.Session.TTL = Duration(30 * time.Minute)
	cfg.Session.PurgeInterval = Duration(5 * time.Minute)
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 7
	return cfg
}

// LoadConfig читает конфигурацию: значения по умолчанию, затем файл (если задан), затем .env и переменные окружения.
func LoadConfig(filename string) (*Config, error) {
	const op = "config.LoadConfig"

	cfg := Default()
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read %s: %w", op, filename, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse %s: %w", op, filename, err)
		}
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *Duration) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			// как в старых настройках: целое число означает секунды
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			d = time.Duration(n) * time.Second
		}
		*dst = Duration(d)
		return nil
	}

	setString("SERVER_HOST", &c.Server.Host)
	setString("SERVER_PORT", &c.Server.Port)
	setString("TELEGRAM_BOT_TOKEN", &c.TelegramBot.Token)
	setString("BOT_MODE", &c.TelegramBot.Mode)
	setString("WEBHOOK_URL", &c.TelegramBot.WebhookURL)
	setString("LISTEN_ADDR", &c.TelegramBot.ListenAddr)
	setString("DATABASE_URL", &c.Database.URL)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_PORT", &c.Database.Port)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.Name)
	setString("STORAGE_TYPE", &c.Storage.Type)
	setString("STORAGE_FILE", &c.Storage.File)
	setString("QUESTIONS_FILE", &c.Content.Questions)
	setString("FAQ_FILE", &c.Content.FAQ)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.File)

	if err := setDuration("POLL_INTERVAL", &c.TelegramBot.PollInterval); err != nil {
		return err
	}
	if err := setDuration("SESSION_TTL", &c.Session.TTL); err != nil {
		return err
	}
	return setDuration("PURGE_INTERVAL", &c.Session.PurgeInterval)
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramBot.Token == "" {
		errs = append(errs, errors.New("telegram bot token is not set (TELEGRAM_BOT_TOKEN)"))
	}
	switch c.TelegramBot.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.TelegramBot.WebhookURL == "" {
			errs = append(errs, errors.New("webhook mode requires WEBHOOK_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown bot mode %q", c.TelegramBot.Mode))
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageJSON:
		if c.Storage.File == "" {
			errs = append(errs, errors.New("json storage requires a file path"))
		}
	case StoragePostgres:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
			errs = append(errs, errors.New("postgres storage requires DATABASE_URL or database host and name"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	if c.Session.PurgeInterval < 0 {
		errs = append(errs, errors.New("purge interval must not be negative"))
	}
	return errors.Join(errs...)
}

// DSN строка подключения к PostgreSQL
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// HTTPAddr адрес HTTP-сервера
func (c *Config) HTTPAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
