// file: config/config.go
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config 应用全部配置项
type Config struct {
	Env          string
	Port         string
	DBUser       string
	DBPass       string
	DBHost       string
	DBPort       string
	DBName       string
	RedisAddr    string
	RedisPass    string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
}

// Load 从环境变量（以及存在的 .env 文件）读取配置
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	return &Config{
		Env:          getEnvOrDefault("ENV", "development"),
		Port:         getEnvOrDefault("PORT", "8080"),
		DBUser:       getEnvOrDefault("DB_USER", "root"),
		DBPass:       getEnvOrDefault("DB_PASSWORD", "123456"),
		DBHost:       getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:       getEnvOrDefault("DB_PORT", "3306"),
		DBName:       getEnvOrDefault("DB_NAME", "vibebuild"),
		RedisAddr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnvOrDefault("JWT_SECRET", "a-very-secure-secret-that-should-not-ship"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
