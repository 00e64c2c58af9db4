package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultBaseURL is the fallback when EVAL_BASE_URL is not set.
const defaultBaseURL = "http://localhost:8000"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Evaluator EvaluatorConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type EvaluatorConfig struct {
	BaseURL       string
	GuidePath     string
	UploadTimeout time.Duration
	EvalTimeout   time.Duration
}

type StorageConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "rfp_analyzer"),
		},
		Evaluator: EvaluatorConfig{
			BaseURL:   getEnv("EVAL_BASE_URL", defaultBaseURL),
			GuidePath: getEnv("EVAL_GUIDE_PATH", "guide/guide_reference.txt"),
			// The original frontend waited on the backend indefinitely.
			// Bounded waits instead: a timeout surfaces as an ordinary
			// transport failure.
			UploadTimeout: getEnvAsDuration("EVAL_UPLOAD_TIMEOUT", "2m"),
			EvalTimeout:   getEnvAsDuration("EVAL_TIMEOUT", "5m"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 20*1024*1024),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
