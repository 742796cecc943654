package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Order session behaviour.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`
	MaxPhotos         int `mapstructure:"MAX_PHOTOS"`

	// Simulated gateway behaviour.
	GatewayLatencyMs   int     `mapstructure:"GATEWAY_LATENCY_MS"`
	GatewayFailureRate float64 `mapstructure:"GATEWAY_FAILURE_RATE"`

	// Seconds between tracking status advances after payment.
	TrackingIntervalSec int `mapstructure:"TRACKING_INTERVAL_SEC"`

	// External service keys. All optional; simulated fallbacks are used
	// when blank.
	StripeKey     string `mapstructure:"STRIPE_KEY"`
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("MAX_PHOTOS", 10)
	viper.SetDefault("GATEWAY_LATENCY_MS", 800)
	viper.SetDefault("GATEWAY_FAILURE_RATE", 0.05)
	viper.SetDefault("TRACKING_INTERVAL_SEC", 60)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("GEMINI_API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
