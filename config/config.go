package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the runtime configuration surface. The dataset itself is fixed
// by the catalog package; only the seed, the store location and the server
// wiring come from the environment.
type Config struct {
	AppHost  string
	AppPort  string
	DBDriver string // "sqlite" (default) or "mysql"
	DBPath   string // sqlite file path
	DBDSN    string // mysql DSN, required when DBDriver is mysql
	Seed     int64

	SMTP struct {
		Host      string
		Port      string
		User      string
		Password  string
		UseTLS    bool
		Recipient string
	}
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppHost:  getEnv("APP_HOST", "0.0.0.0"),
		AppPort:  getEnv("APP_PORT", "8080"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBPath:   getEnv("DB_PATH", "india_ops.db"),
		DBDSN:    getEnv("DB_DSN", ""),
	}

	seedStr := getEnv("SEED", "2024")
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: SEED %q is not an integer: %w", seedStr, err)
	}
	cfg.Seed = seed

	cfg.SMTP.Host = getEnv("SMTP_HOST", "")
	cfg.SMTP.Port = getEnv("SMTP_PORT", "587")
	cfg.SMTP.User = getEnv("SMTP_USER", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.UseTLS = getEnv("SMTP_USE_TLS", "true") == "true"
	cfg.SMTP.Recipient = getEnv("ALERT_RECIPIENT", "")

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("config: DB_PATH is required for the sqlite driver")
		}
	case "mysql":
		if c.DBDSN == "" {
			return errors.New("config: DB_DSN is required for the mysql driver")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

// InitDB opens the configured store. SQLite is the default and matches the
// dashboard's embedded deployment; MySQL is available for shared setups.
func (c *Config) InitDB() (*gorm.DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	switch c.DBDriver {
	case "mysql":
		db, err := gorm.Open(mysql.Open(c.DBDSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("config: open mysql: %w", err)
		}
		return db, nil
	default:
		db, err := gorm.Open(sqlite.Open(c.DBPath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("config: open sqlite %s: %w", c.DBPath, err)
		}
		return db, nil
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
