// Package config загружает настройки клиента и сервера.
// Приоритет: флаги командной строки, переменные окружения FITSYNC_*, файл конфигурации, значения по умолчанию.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "FITSYNC"        // EnvPrefix префикс переменных окружения
	DefaultTimeout = 30 * time.Second // DefaultTimeout таймаут HTTP запросов клиента
)

// Ключи настроек. Совпадают с именами флагов.
const (
	KeyConfig   = "config"
	KeyLogLevel = "log-level"

	KeyServerURL = "server"
	KeyDBPath    = "db"
	KeyTimeout   = "timeout"
	KeyStrict    = "strict"
	KeyMetrics   = "metrics"

	KeyAddr            = "addr"
	KeyDatabase        = "database"
	KeyJWTSecret       = "jwt-secret"
	KeyAccessTTL       = "access-ttl"
	KeyRefreshTTL      = "refresh-ttl"
	KeyShutdownTimeout = "shutdown-timeout"
)

// Client настройки CLI клиента
type Client struct {
	ServerURL string
	DBPath    string
	LogLevel  string
	Timeout   time.Duration
	Strict    bool // Strict нарушения инвариантов хранилища завершают процесс
	Metrics   bool // Metrics печатать метрики синхронизации после команды
}

// Server настройки эталонного сервера
type Server struct {
	Addr            string
	Database        string
	JWTSecret       string
	LogLevel        string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	ShutdownTimeout time.Duration
}

// New создает viper с префиксом окружения FITSYNC_
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ClientFlags регистрирует флаги клиента
func ClientFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "Path to config file (yaml, json or toml)")
	fs.String(KeyLogLevel, "warn", "Log level: debug, info, warn, error")
	fs.String(KeyServerURL, "http://localhost:8080", "Server URL")
	fs.String(KeyDBPath, "fitsync-client.db", "Path to local database")
	fs.Duration(KeyTimeout, DefaultTimeout, "HTTP request timeout")
	fs.Bool(KeyStrict, false, "Panic on local store invariant violations")
	fs.Bool(KeyMetrics, false, "Print sync metrics after the command")
}

// ServerFlags регистрирует флаги сервера
func ServerFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "Path to config file (yaml, json or toml)")
	fs.String(KeyLogLevel, "info", "Log level: debug, info, warn, error")
	fs.String(KeyAddr, ":8080", "Listen address")
	fs.String(KeyDatabase, "fitsync.db", "Path to SQLite database")
	fs.String(KeyJWTSecret, "", "Secret for signing access tokens")
	fs.Duration(KeyAccessTTL, 15*time.Minute, "Access token lifetime")
	fs.Duration(KeyRefreshTTL, 30*24*time.Hour, "Refresh token lifetime")
	fs.Duration(KeyShutdownTimeout, 10*time.Second, "Graceful shutdown timeout")
}

// Bind связывает флаги с viper и читает файл конфигурации, если он указан
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

// LoadClient читает настройки клиента
func LoadClient(v *viper.Viper) (Client, error) {
	cfg := Client{
		ServerURL: v.GetString(KeyServerURL),
		DBPath:    v.GetString(KeyDBPath),
		LogLevel:  v.GetString(KeyLogLevel),
		Timeout:   v.GetDuration(KeyTimeout),
		Strict:    v.GetBool(KeyStrict),
		Metrics:   v.GetBool(KeyMetrics),
	}

	var errs []error
	if cfg.ServerURL == "" {
		errs = append(errs, errors.New("server url is required"))
	}
	if cfg.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// LoadServer читает настройки сервера
func LoadServer(v *viper.Viper) (Server, error) {
	cfg := Server{
		Addr:            v.GetString(KeyAddr),
		Database:        v.GetString(KeyDatabase),
		JWTSecret:       v.GetString(KeyJWTSecret),
		LogLevel:        v.GetString(KeyLogLevel),
		AccessTTL:       v.GetDuration(KeyAccessTTL),
		RefreshTTL:      v.GetDuration(KeyRefreshTTL),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	var errs []error
	if cfg.Addr == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if cfg.Database == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if len(cfg.JWTSecret) < 32 {
		errs = append(errs, errors.New("jwt secret must be at least 32 characters"))
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}
