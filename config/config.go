package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	ServiceName       string `mapstructure:"SERVICE_NAME"`

	// Google Calendar. Credentials hold a service-account JSON blob or a path to one.
	GoogleCredentials string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	CalendarID        string `mapstructure:"CALENDAR_ID"`

	// Gemini agent.
	GeminiAPIKey       string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel        string `mapstructure:"GEMINI_MODEL"`
	AgentMaxIterations int    `mapstructure:"AGENT_MAX_ITERATIONS"`

	// Slot engine.
	BusinessStartHour int `mapstructure:"BUSINESS_START_HOUR"`
	BusinessEndHour   int `mapstructure:"BUSINESS_END_HOUR"`
	SlotMinutes       int `mapstructure:"SLOT_MINUTES"`

	// Sessions.
	SessionBackend       string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	SessionHistoryLimit  int           `mapstructure:"SESSION_HISTORY_LIMIT"`

	// Redis configuration, used when SESSION_BACKEND=redis.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// BackendURL is where the chat UI posts messages.
	BackendURL string `mapstructure:"BACKEND_URL"`
}

var AppConfig Config

func LoadConfig() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("SERVICE_NAME", "TailorTalk Booking API")
	viper.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	viper.SetDefault("CALENDAR_ID", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AGENT_MAX_ITERATIONS", 8)
	viper.SetDefault("BUSINESS_START_HOUR", 9)
	viper.SetDefault("BUSINESS_END_HOUR", 17)
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL", time.Hour)
	viper.SetDefault("SESSION_SWEEP_INTERVAL", time.Hour)
	viper.SetDefault("SESSION_HISTORY_LIMIT", 6)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("BACKEND_URL", "http://localhost:8080/chat")
}

// Validate reports every required setting that is missing. The server must not
// start serving traffic when it returns an error.
func (c Config) Validate() error {
	var missing []string
	if c.GoogleCredentials == "" {
		missing = append(missing, "GOOGLE_APPLICATION_CREDENTIALS")
	}
	if c.CalendarID == "" {
		missing = append(missing, "CALENDAR_ID")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	if c.BusinessStartHour < 0 || c.BusinessEndHour > 24 {
		return errors.New("business hours must fall within 0-24")
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return errors.New("SESSION_BACKEND must be memory or redis")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
