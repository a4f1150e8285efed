// Package config loads the service configuration.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional YAML file named by CONFIG_FILE, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"tour-admin/internal/pkg/jwt"
	"tour-admin/internal/pkg/session"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Admin    AdminConfig    `koanf:"admin"`
	Session  SessionConfig  `koanf:"session"`
	API      APIConfig      `koanf:"api"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Login    LoginConfig    `koanf:"login"`
	Stats    StatsConfig    `koanf:"stats"`
}

type ServerConfig struct {
	Addr     string `koanf:"addr"`
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`
}

// AdminConfig is the single configured administrator account.
type AdminConfig struct {
	Email        string `koanf:"email"`
	Password     string `koanf:"password"`
	PasswordHash string `koanf:"password_hash"`
}

type SessionConfig struct {
	Secret       string `koanf:"secret"`
	CookieSecure bool   `koanf:"cookie_secure"`
}

// APIConfig points at the remote booking API.
type APIConfig struct {
	URL     string        `koanf:"url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type RedisConfig struct {
	Addr string `koanf:"addr"`
	Pass string `koanf:"pass"`
}

// LoginConfig controls the optional failed-login throttle. MaxAttempts 0
// disables it.
type LoginConfig struct {
	MaxAttempts int64         `koanf:"max_attempts"`
	Window      time.Duration `koanf:"window"`
}

type StatsConfig struct {
	PushInterval time.Duration `koanf:"push_interval"`
}

var defaults = map[string]any{
	"server.addr":         ":8080",
	"server.env":          EnvProduction,
	"server.log_level":    "info",
	"admin.email":         "admin@tour.com",
	"admin.password":      "admin123",
	"api.url":             "http://localhost:3000",
	"api.timeout":         "15s",
	"login.max_attempts":  0,
	"login.window":        "15m",
	"stats.push_interval": "30s",
}

// envKeys maps the supported environment variables onto config keys.
var envKeys = map[string]string{
	"HTTP_ADDR":             "server.addr",
	"APP_ENV":               "server.env",
	"LOG_LEVEL":             "server.log_level",
	"ADMIN_EMAIL":           "admin.email",
	"ADMIN_PASSWORD":        "admin.password",
	"ADMIN_PASSWORD_HASH":   "admin.password_hash",
	"SESSION_SECRET":        "session.secret",
	"SESSION_COOKIE_SECURE": "session.cookie_secure",
	"API_URL":               "api.url",
	"API_TOKEN":             "api.token",
	"API_TIMEOUT":           "api.timeout",
	"DATABASE_URL":          "database.url",
	"REDIS_ADDR":            "redis.addr",
	"REDIS_PASS":            "redis.pass",
	"LOGIN_MAX_ATTEMPTS":    "login.max_attempts",
	"LOGIN_WINDOW":          "login.window",
	"STATS_PUSH_INTERVAL":   "stats.push_interval",
}

// Load reads the configuration from defaults, CONFIG_FILE and the environment.
func Load() (AppConfig, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	return cfg, cfg.Validate()
}

func (c *AppConfig) normalize() {
	c.Server.Env = strings.ToLower(strings.TrimSpace(c.Server.Env))
	c.Server.LogLevel = strings.ToLower(strings.TrimSpace(c.Server.LogLevel))
	c.Admin.Email = strings.TrimSpace(c.Admin.Email)
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
}

// Validate checks the settings the service cannot start without.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.API.URL == "" {
		errs = append(errs, errors.New("API_URL must not be empty"))
	}
	if c.Session.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	if c.Admin.Email == "" || (c.Admin.Password == "" && c.Admin.PasswordHash == "") {
		errs = append(errs, errors.New("admin email and password must be set"))
	}
	if c.Login.MaxAttempts < 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must not be negative"))
	}
	if c.Login.MaxAttempts > 0 && c.Login.Window <= 0 {
		errs = append(errs, errors.New("LOGIN_WINDOW must be positive"))
	}
	if c.Stats.PushInterval <= 0 {
		errs = append(errs, errors.New("STATS_PUSH_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

func (c AppConfig) IsDevelopment() bool {
	return c.Server.Env == EnvDevelopment
}

// ThrottleEnabled reports whether failed logins should be counted.
func (c AppConfig) ThrottleEnabled() bool {
	return c.Login.MaxAttempts > 0 && c.Redis.Addr != ""
}

// JWT returns the session token settings.
func (c AppConfig) JWT() jwt.Config {
	return jwt.Config{
		Secret:         c.Session.Secret,
		Issuer:         "tour-admin",
		Audience:       "tour-admin-dashboard",
		TTL:            session.DefaultTTL,
		AllowEphemeral: c.IsDevelopment(),
	}
}

func (c AppConfig) Cookie() session.CookieOptions {
	return session.CookieOptions{Secure: c.Session.CookieSecure}
}
