package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Driver string // "postgres" or "sqlite"

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	CSVOutputDir string
	SourcesPath  string
	APIAddr      string
	ChromeBin    string
	LogLevel     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Driver: getEnv("DB_DRIVER", "postgres"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "scrapy_immo"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getEnv("SQLITE_PATH", "./output/properties.db"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 1000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		CSVOutputDir: getEnv("CSV_OUTPUT_DIR", "./output"),
		SourcesPath:  getEnv("SOURCES_PATH", "./sources.yaml"),
		APIAddr:      getEnv("API_ADDR", ":8080"),
		ChromeBin:    getEnv("CHROME_BIN", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
