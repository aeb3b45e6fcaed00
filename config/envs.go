package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP           string        // Host IP for the server
	RESTPort         int           // Port for the REST API
	GinMode          string        // Mode for the Gin framework (e.g., release, debug, test)
	StoreBackend     string        // Q-table backend: memory, redis or mongo
	RedisHost        string        // Hostname or IP address for Redis
	RedisPort        int           // Port number for Redis
	RedisPassword    string        // Password for Redis
	RedisDB          int           // Redis logical database
	RedisPrefix      string        // Prefix of every Redis key
	DBHost           string        // Hostname or IP address for the database
	DBPort           int           // Port number for the database
	DBUser           string        // Username for the database
	DBPassword       string        // Password for the database
	DBName           string        // Name of the database
	JWTSecret        string        // Secret key for JWT signing
	JWTIssuer        string        // Issuer claim for JWTs
	OperatorName     string        // Name of the operator allowed to train
	OperatorPassword string        // Plain password of the operator
	TrainLockTTL     time.Duration // Expiry of the distributed training lock
}

// Load reads the configuration from the environment after loading a .env file if present.
// Every value has a default; use MustLoadServer when serving HTTP.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		StoreBackend:     getEnvWithDefault("STORE_BACKEND", BackendMemory),
		RedisHost:        getEnvWithDefault("REDIS_HOST", "localhost"),
		RedisPort:        getEnvAsIntWithDefault("REDIS_PORT", 6379),
		RedisPassword:    getEnvWithDefault("REDIS_PASS", ""),
		RedisDB:          getEnvAsIntWithDefault("REDIS_DB", 0),
		RedisPrefix:      getEnvWithDefault("REDIS_PREFIX", "qlearn"),
		DBHost:           getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:           getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:           getEnvWithDefault("DB_USER", ""),
		DBPassword:       getEnvWithDefault("DB_PASS", ""),
		DBName:           getEnvWithDefault("DB_NAME", "qlearn"),
		JWTSecret:        getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:        getEnvWithDefault("JWT_ISSUER", "vinom-qlearn"),
		OperatorName:     getEnvWithDefault("OPERATOR_NAME", ""),
		OperatorPassword: getEnvWithDefault("OPERATOR_PASSWORD", ""),
		TrainLockTTL:     time.Duration(getEnvAsIntWithDefault("TRAIN_LOCK_TTL", 120)) * time.Second,
	}
}

// MustLoadServer loads the configuration and requires the values the HTTP server cannot run without.
func MustLoadServer() Config {
	c := Load()
	c.JWTSecret = mustGetEnv("JWT_SECRET")
	c.OperatorName = mustGetEnv("OPERATOR_NAME")
	c.OperatorPassword = mustGetEnv("OPERATOR_PASSWORD")
	return c
}

// RedisAddr returns the host:port of Redis.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// MongoURI returns the connection string of the database. Credentials are omitted when DB_USER is empty.
func (c Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%v", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%v", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// RESTAddr returns the listen address of the HTTP server.
func (c Config) RESTAddr() string {
	return fmt.Sprintf("%s:%v", c.HostIP, c.RESTPort)
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer,
// or returns the default when it is not set. A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
