package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Uploads struct {
		Dir     string
		KeyPath string
	}
	AdminPIN        string
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (CURIO_ prefix) and optional curio.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CURIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("curio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.key_path", "filekey.key")
	v.SetDefault("session.lifetime", "12h")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Uploads.Dir = v.GetString("uploads.dir")
	cfg.Uploads.KeyPath = v.GetString("uploads.key_path")
	cfg.AdminPIN = v.GetString("admin.pin")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid CURIO_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("CURIO_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CURIO_DB_DSN is required")
	}
	// Refuse to start without an admin PIN rather than falling back to a
	// hardcoded default.
	if cfg.AdminPIN == "" {
		return nil, fmt.Errorf("CURIO_ADMIN_PIN is required for admin access")
	}

	return cfg, nil
}
