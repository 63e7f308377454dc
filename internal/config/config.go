package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port      string
	AppEnv    string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	JWTExpireHours int

	FrontendURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	RedisAddr     string
	RedisPassword string

	// Daily cap on issue creation per account. Zero disables the limiter.
	IssueRateLimit int

	ModelServiceURL     string
	ModelTimeoutSeconds int
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		AppEnv:    getEnv("APP_ENV", "development"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "civicfix"),
		JWTSecret: getEnv("JWT_SECRET", "secret"),

		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 72),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		IssueRateLimit: getEnvInt("ISSUE_RATE_LIMIT", 20),

		ModelServiceURL:     getEnv("MODEL_SERVICE_URL", "http://localhost:8000"),
		ModelTimeoutSeconds: getEnvInt("MODEL_TIMEOUT_SECONDS", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
