package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App         AppConfig
	ConnectWise ConnectWiseConfig
	Redis       RedisConfig
	Logger      LoggerConfig
	Trigger     TriggerConfig
	Scheduler   SchedulerConfig
	RulesPath   string
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// ConnectWiseConfig holds helpdesk platform API credentials.
type ConnectWiseConfig struct {
	Site              string
	CompanyID         string
	PublicKey         string
	PrivateKey        string
	ClientID          string
	APITimeoutSeconds int
	PageSize          int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// TriggerConfig defines authentication for the run-trigger endpoints.
type TriggerConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
}

// SchedulerConfig controls the optional in-process interval runner.
// A zero interval disables the corresponding pipeline ticker; an external
// scheduler hitting the trigger endpoints is then the only invoker.
type SchedulerConfig struct {
	AssignmentIntervalSeconds int
	VIPIntervalSeconds        int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-autopilot"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 120),
		},
		ConnectWise: ConnectWiseConfig{
			Site:              getEnv("CONNECTWISE_SITE", "https://api-na.myconnectwise.net"),
			CompanyID:         os.Getenv("CONNECTWISE_COMPANY_ID"),
			PublicKey:         os.Getenv("CONNECTWISE_PUBLIC_KEY"),
			PrivateKey:        os.Getenv("CONNECTWISE_PRIVATE_KEY"),
			ClientID:          os.Getenv("CONNECTWISE_CLIENT_ID"),
			APITimeoutSeconds: getEnvAsInt("CONNECTWISE_API_TIMEOUT_SECONDS", 30),
			PageSize:          getEnvAsInt("CONNECTWISE_PAGE_SIZE", 50),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Trigger: TriggerConfig{
			JWTSecret:       getEnv("TRIGGER_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes: getEnvAsInt("TRIGGER_TOKEN_TTL_MINUTES", 60),
		},
		Scheduler: SchedulerConfig{
			AssignmentIntervalSeconds: getEnvAsInt("ASSIGNMENT_INTERVAL_SECONDS", 0),
			VIPIntervalSeconds:        getEnvAsInt("VIP_INTERVAL_SECONDS", 0),
		},
		RulesPath: getEnv("RULES_PATH", ""),
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// APITimeout returns the helpdesk API call timeout.
func (c ConnectWiseConfig) APITimeout() time.Duration {
	if c.APITimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// AssignmentInterval returns the assignment pipeline period, zero when disabled.
func (s SchedulerConfig) AssignmentInterval() time.Duration {
	if s.AssignmentIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(s.AssignmentIntervalSeconds) * time.Second
}

// VIPInterval returns the VIP pipeline period, zero when disabled.
func (s SchedulerConfig) VIPInterval() time.Duration {
	if s.VIPIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(s.VIPIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
