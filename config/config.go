package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppEnv         string
	AppPort        string
	AllowedOrigins string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPath         string
	DBMaxIdleConns int
	DBMaxOpenConns int
	NATSURL        string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	zap.L().Debug("env not set, using default", zap.String("key", key), zap.String("default", defaultValue))
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		zap.L().Warn("invalid integer value, using default", zap.String("key", key), zap.Int("default", defaultValue))
	}
	return defaultValue
}

// Load reads the configuration from the environment. A .env file in the
// working directory, if present, seeds variables that are not already set.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AppPort:        getEnv("APP_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		DBDriver:       getEnv("DB_DRIVER", DriverPostgres),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "taskboard"),
		DBPassword:     getEnv("DB_PASSWORD", "taskboard"),
		DBName:         getEnv("DB_NAME", "taskboard"),
		DBPath:         getEnv("DB_PATH", "taskboard.db"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		NATSURL:        getEnv("NATS_URL", ""),
	}
}

// ClientConfig configures the taskcli command.
type ClientConfig struct {
	APIURL   string
	Language string
}

func LoadClient() ClientConfig {
	_ = godotenv.Load(".env")

	return ClientConfig{
		APIURL:   getEnv("TASKBOARD_URL", "http://localhost:8080/api/v1"),
		Language: getEnv("TASKBOARD_LANG", ""),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
