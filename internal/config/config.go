package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Env       string
	HTTPPort  string
	DBType    string // postgres or sqlite
	DBDSN     string
	RedisAddr string // empty disables the lookup cache
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded automatically.
func LoadConfig() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		HTTPPort:  getEnv("HTTP_PORT", "4030"),
		DBType:    getEnv("DB_TYPE", "sqlite"),
		DBDSN:     getEnv("DB_DSN", ".db/studyref.db"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
}

// GetDb opens the configured database.
func GetDb(cnf *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cnf.DBType {
	case "postgres":
		dialector = postgres.Open(cnf.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cnf.DBDSN)
	default:
		logrus.Fatalf("unknown DB_TYPE: %s", cnf.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
