// Package config provides configuration management for the inkstream application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: all problems are gathered and reported in one
// startup failure instead of one at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/user/inkstream-go/apperror"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing session tokens
	TokenDuration time.Duration // Lifetime of an issued session token
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port         string // Port for the HTTP server
	ClientOrigin string // Allowed CORS origin for the browser client
}

// StorageConfig holds media storage configuration for the S3 backend.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string // Optional custom endpoint for S3-compatible services
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PublicBaseURL   string // Base URL under which stored objects are reachable
	UploadFolder    string // Key prefix for uploaded covers
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB      *PoolConfig
	Auth    *AuthConfig
	Server  *ServerConfig
	Storage *StorageConfig
}

// getRequiredEnv returns the value of a required environment variable,
// appending to errs when it is unset.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv returns the value of an optional environment variable or the
// default when unset.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt parses an optional integer variable. Parsing failures are
// collected and the default is used.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvBool parses an optional boolean variable. Parsing failures are
// collected and the default is used.
func getOptionalEnvBool(key string, defaultValue bool, errs *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// getOptionalEnvDuration parses an optional duration variable ("15m", "72h").
// Parsing failures are collected and the default is used.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size within reasonable bounds.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database
	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenDuration := getOptionalEnvDuration("JWT_TOKEN_DURATION", 72*time.Hour, &errs)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
	}

	// Server
	serverConfig := &ServerConfig{
		Port:         getOptionalEnv("PORT", "4000"),
		ClientOrigin: getOptionalEnv("CLIENT_URL", "*"),
	}

	// Media storage
	storageConfig := &StorageConfig{
		Bucket:          getRequiredEnv("S3_BUCKET", &errs),
		Region:          getOptionalEnv("S3_REGION", "us-east-1"),
		Endpoint:        getOptionalEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getOptionalEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getOptionalEnv("S3_SECRET_ACCESS_KEY", ""),
		UsePathStyle:    getOptionalEnvBool("S3_USE_PATH_STYLE", false, &errs),
		PublicBaseURL:   getOptionalEnv("S3_PUBLIC_BASE_URL", ""),
		UploadFolder:    getOptionalEnv("UPLOAD_FOLDER", "uploads"),
	}

	if len(errs) > 0 {
		return nil, apperror.NewConfigError(
			fmt.Sprintf("configuration errors:\n- %s", strings.Join(errs, "\n- ")), nil)
	}

	return &AppConfig{
		DB:      dbConfig,
		Auth:    authConfig,
		Server:  serverConfig,
		Storage: storageConfig,
	}, nil
}
