package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Stripe configuration.
	StripeKey        string `mapstructure:"STRIPE_KEY"`
	StripeSuccessURL string `mapstructure:"STRIPE_SUCCESS_URL"`
	StripeCancelURL  string `mapstructure:"STRIPE_CANCEL_URL"`

	// Staff access token for the admin endpoints.
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY"`

	// SMTP configuration for booking/refund emails.
	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   int    `mapstructure:"SMTP_PORT"`
	SMTPUser   string `mapstructure:"SMTP_USER"`
	SMTPPass   string `mapstructure:"SMTP_PASS"`
	FromEmail  string `mapstructure:"FROM_EMAIL"`
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// Booking engine tuning.
	HoldTTLMinutes       int    `mapstructure:"HOLD_TTL_MINUTES"`
	SweepIntervalMinutes int    `mapstructure:"SWEEP_INTERVAL_MINUTES"`
	BookingTimezone      string `mapstructure:"BOOKING_TIMEZONE"`
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
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_SUCCESS_URL", "http://localhost:3000/booking-complete")
	viper.SetDefault("STRIPE_CANCEL_URL", "http://localhost:3000/booking-cancelled")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("HOLD_TTL_MINUTES", 15)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 15)
	viper.SetDefault("BOOKING_TIMEZONE", "Europe/London")

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
