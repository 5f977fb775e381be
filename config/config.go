package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
	Catalog  CatalogConfig
	Sessions SessionConfig
	Guide    GuideConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver     string
	URL        string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
	MaxConns   int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	AuthDisabled    bool
	AllowedDomain   string
}

type CatalogConfig struct {
	URL             string
	PlaceholderBase string
	Timeout         time.Duration
	RefreshSchedule string
	RatePerSecond   float64
}

type SessionConfig struct {
	MaxOpen int
	TTL     time.Duration
}

type GuideConfig struct {
	BusinessName     string
	BusinessTagline  string
	BusinessLocation string
	BusinessPhone    string
	BusinessWebsite  string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3UsePathStyle   bool
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			URL:        getEnv("DATABASE_URL", ""),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnvAsInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "structurecare"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "structurecare.db"),
			MaxConns:   getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			AuthDisabled:    getEnvAsBool("AUTH_DISABLED", false),
			AllowedDomain:   getEnv("AUTH_ALLOWED_DOMAIN", "structurelandscapes.com"),
		},
		Catalog: CatalogConfig{
			URL:             getEnv("CATALOG_URL", ""),
			PlaceholderBase: getEnv("CATALOG_PLACEHOLDER_BASE", "https://placehold.co/400x300/10b981/ffffff?text="),
			Timeout:         getEnvAsDuration("CATALOG_TIMEOUT", 15*time.Second),
			RefreshSchedule: getEnv("CATALOG_REFRESH_SCHEDULE", "@every 30m"),
			RatePerSecond:   getEnvAsFloat("CATALOG_RATE_PER_SECOND", 2),
		},
		Sessions: SessionConfig{
			MaxOpen: getEnvAsInt("SESSIONS_MAX_OPEN", 256),
			TTL:     getEnvAsDuration("SESSIONS_TTL", 2*time.Hour),
		},
		Guide: GuideConfig{
			BusinessName:     getEnv("BUSINESS_NAME", "Structure Landscapes"),
			BusinessTagline:  getEnv("BUSINESS_TAGLINE", "Landscape Design & Installation"),
			BusinessLocation: getEnv("BUSINESS_LOCATION", ""),
			BusinessPhone:    getEnv("BUSINESS_PHONE", ""),
			BusinessWebsite:  getEnv("BUSINESS_WEBSITE", "structurelandscapes.com"),
			S3Bucket:         getEnv("GUIDE_S3_BUCKET", ""),
			S3Region:         getEnv("GUIDE_S3_REGION", "us-east-1"),
			S3Endpoint:       getEnv("GUIDE_S3_ENDPOINT", ""),
			S3AccessKey:      getEnv("GUIDE_S3_ACCESS_KEY", ""),
			S3SecretKey:      getEnv("GUIDE_S3_SECRET_KEY", ""),
			S3UsePathStyle:   getEnvAsBool("GUIDE_S3_PATH_STYLE", false),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Catalog.URL == "" {
		return fmt.Errorf("CATALOG_URL is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			return fmt.Errorf("DATABASE_URL or DB_HOST is required when STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=%s", DriverSQLite)
		}
	case DriverFirestore:
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when STORE_DRIVER=%s", DriverFirestore)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Database.Driver)
	}

	if !c.Firebase.AuthDisabled && c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required unless AUTH_DISABLED=true")
	}

	if c.Sessions.MaxOpen <= 0 {
		return fmt.Errorf("SESSIONS_MAX_OPEN must be positive")
	}

	return nil
}

// ArchiveEnabled reports whether rendered guides are uploaded to S3.
func (g GuideConfig) ArchiveEnabled() bool {
	return g.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
