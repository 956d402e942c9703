package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Env          string
	DBDriver     string // postgres, sqlite
	DBDSN        string
	RedisAddr    string
	KafkaServers string
	KafkaTopic   string
}

// LoadConfig reads configuration from the environment, with .env as a
// fallback for local development.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:          getenv("ENV", "dev"),
		DBDriver:     getenv("DB_DRIVER", "sqlite"),
		DBDSN:        getenv("DB_DSN", ".data/forum.db"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaServers: os.Getenv("KAFKA_SERVERS"),
		KafkaTopic:   getenv("KAFKA_TOPIC", "forum.engagement"),
	}
}

// GetDb opens the configured database. TranslateError is on so the
// store sees gorm.ErrDuplicatedKey for unique violations regardless of
// driver.
func GetDb(cfg *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
