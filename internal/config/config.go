package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Address       string
	Port          int
	BaseURL       string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RefreshSpec   string
	RetentionDays int
	LogLevel      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.New("invalid PORT value")
	}

	address := os.Getenv("ADDRESS")
	if address == "" {
		address = "0.0.0.0"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + portStr
	}

	// Empty MONGO_URI keeps alerts in memory.
	mongoURI := os.Getenv("MONGO_URI")

	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "pricewatch"
	}

	// Empty REDIS_ADDR disables the report cache.
	redisAddr := os.Getenv("REDIS_ADDR")

	// Empty REFRESH_SPEC disables the refresh scheduler.
	refreshSpec := os.Getenv("REFRESH_SPEC")

	retentionStr := os.Getenv("RETENTION_DAYS")
	if retentionStr == "" {
		retentionStr = "90"
	}
	retentionDays, err := strconv.Atoi(retentionStr)
	if err != nil || retentionDays <= 0 {
		return nil, errors.New("invalid RETENTION_DAYS value")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		Address:       address,
		Port:          port,
		BaseURL:       baseURL,
		MongoURI:      mongoURI,
		MongoDB:       mongoDB,
		RedisAddr:     redisAddr,
		RefreshSpec:   refreshSpec,
		RetentionDays: retentionDays,
		LogLevel:      logLevel,
	}, nil
}
