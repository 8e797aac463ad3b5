package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	CookieName   string
	CookieSecure bool

	YouTubeAPIKey  string
	YouTubeBaseURL string

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "4000"),
		MySQLDSN:     getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/bandbook?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		CookieName:   getEnv("COOKIE_NAME", "bb_token"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		YouTubeBaseURL: getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),

		CloudinaryCloud:  os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "bandbook"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
