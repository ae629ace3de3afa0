package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	QuizGen  QuizGenConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	QuizTTL  time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type QuizGenConfig struct {
	BaseURL string
	Timeout time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: durationSeconds(opt("DB_CONNECT_TIMEOUT_SECONDS"), 5*time.Second),
		PoolMaxConns:   int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		QuizTTL:  durationSeconds(opt("REDIS_QUIZ_TTL_SECONDS"), 24*time.Hour),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  durationSeconds(opt("JWT_ACCESS_EXPIRES_SECONDS"), 15*time.Minute),
		RefreshExpiresIn: durationSeconds(opt("JWT_REFRESH_EXPIRES_SECONDS"), 7*24*time.Hour),
	}

	cfg.QuizGen = QuizGenConfig{
		BaseURL: opt("QUIZGEN_BASE_URL"),
		Timeout: durationSeconds(opt("QUIZGEN_TIMEOUT_SECONDS"), 15*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func durationSeconds(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
