package config

import (
	"errors"  // Validation errors
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Durations

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Log level parsing
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"    // MySQL / MariaDB
	DriverPostgres = "postgres" // PostgreSQL
	DriverSQLite   = "sqlite"   // SQLite file, for local development
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Database driver: mysql, postgres or sqlite
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name (file path for sqlite)
	DBSSLMode  string        // Postgres sslmode
	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // Token lifetime
	RedisAddr  string        // Redis server address, empty disables caching
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Lifetime of cached payment reads
	IsProd     bool          // Is production environment
	LogLevel   logrus.Level  // Minimum log level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "3000"),               // Application port
		DBDriver:   getEnv("DB_DRIVER", DriverMySQL),         // Database driver
		DBUser:     os.Getenv("DB_USER"),                     // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                 // Database password
		DBHost:     getEnv("DB_HOST", "localhost"),           // Database host
		DBPort:     os.Getenv("DB_PORT"),                     // Database port
		DBName:     getEnv("DB_NAME", "payment_dashboard"),   // Database name
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),          // Postgres sslmode
		JWTSecret:  os.Getenv("JWT_SECRET"),                  // JWT secret key
		JWTTTL:     getDuration("JWT_TTL", 24*time.Hour),     // Token lifetime
		RedisAddr:  os.Getenv("REDIS_ADDR"),                  // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                  // Redis password
		RedisDB:    redisDB,                                  // Redis database number
		CacheTTL:   getDuration("CACHE_TTL", 60*time.Second), // Cache lifetime
		IsProd:     os.Getenv("IS_PROD") == "true",           // Is production environment
		LogLevel:   getLevel("LOG_LEVEL", logrus.InfoLevel),  // Log level
	}
}

// Validate checks that the configuration can run a server
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set") // Tokens cannot be signed without it
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		return nil // Supported driver
	}
	return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort // Default postgres port when unset
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port, c.DBSSLMode)
	case DriverSQLite:
		return c.DBName // File path or :memory:
	default:
		port := c.DBPort // Default mysql port when unset
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}

// CacheEnabled reports whether a Redis address is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv returns the variable or a fallback when it is unset
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration, falling back on a missing or bad value
func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// getLevel parses a logrus level name
func getLevel(key string, fallback logrus.Level) logrus.Level {
	if lvl, err := logrus.ParseLevel(os.Getenv(key)); err == nil {
		return lvl
	}
	return fallback
}
