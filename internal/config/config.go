package config

import (
	"os"
	"strconv"
	"strings"
)

// defaultCORSOrigins mirrors the origins the web client is served from.
var defaultCORSOrigins = []string{
	"http://localhost:4201",
	"https://kanbanpro-chv3.onrender.com",
}

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	OpenAIAPIKey  string
	Port          string
	LogLevel      string
	CORSOrigins   []string

	// AuthRateLimitPerMinute bounds signup/login attempts per client IP.
	AuthRateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		DBDriver:               getEnv("DB_DRIVER", "mysql"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "kanbanuser"),
		DBPassword:             getEnv("DB_PASSWORD", "kanbanpassword"),
		DBName:                 getEnv("DB_NAME", "kanban"),
		DBPath:                 getEnv("DB_PATH", "kanban.db"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		SessionSecret:          getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		Port:                   getEnv("PORT", "3000"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		CORSOrigins:            corsOrigins(),
		AuthRateLimitPerMinute: getEnvInt("AUTH_RATE_LIMIT_PER_MINUTE", 30),
	}
}

// corsOrigins returns the default allow-list extended with CORS_ORIGIN and CORS_ORIGINS.
func corsOrigins() []string {
	origins := append([]string{}, defaultCORSOrigins...)
	for _, raw := range []string{os.Getenv("CORS_ORIGIN"), os.Getenv("CORS_ORIGINS")} {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
