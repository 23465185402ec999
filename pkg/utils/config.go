package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Services  ServicesConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32

	MigrationsDir string
	AutoMigrate   bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// ServicesConfig points at the external availability and booking APIs.
type ServicesConfig struct {
	AvailabilityURL string
	BookingURL      string
	Timeout         time.Duration
}

// RateLimitConfig throttles wizard requests per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type BookingConfig struct {
	Timezone          string
	LeadTime          time.Duration
	WizardTTL         time.Duration
	LoginURL          string
	CardPaymentURL    string
	PaymentSuccessURL string
}

// Location resolves the booking time zone, falling back to the server's.
func (c BookingConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cowork-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MIGRATIONS_DIR", "migrations")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SPACE_CACHE_TTL", "5m")
	viper.SetDefault("AVAILABILITY_URL", "http://localhost:3000")
	viper.SetDefault("BOOKING_API_URL", "http://localhost:3000")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")
	viper.SetDefault("BOOKING_TIMEZONE", "Europe/Zurich")
	viper.SetDefault("BOOKING_LEAD_MINUTES", 60)
	viper.SetDefault("WIZARD_TTL_MINUTES", 60)
	viper.SetDefault("LOGIN_URL", "/login")
	viper.SetDefault("CARD_PAYMENT_URL", "/payment/card")
	viper.SetDefault("PAYMENT_SUCCESS_URL", "/payment/success")
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),

			MigrationsDir: viper.GetString("DB_MIGRATIONS_DIR"),
			AutoMigrate:   viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("SPACE_CACHE_TTL"),
		},
		Services: ServicesConfig{
			AvailabilityURL: viper.GetString("AVAILABILITY_URL"),
			BookingURL:      viper.GetString("BOOKING_API_URL"),
			Timeout:         viper.GetDuration("HTTP_CLIENT_TIMEOUT"),
		},
		Booking: BookingConfig{
			Timezone:          viper.GetString("BOOKING_TIMEZONE"),
			LeadTime:          time.Duration(viper.GetInt("BOOKING_LEAD_MINUTES")) * time.Minute,
			WizardTTL:         time.Duration(viper.GetInt("WIZARD_TTL_MINUTES")) * time.Minute,
			LoginURL:          viper.GetString("LOGIN_URL"),
			CardPaymentURL:    viper.GetString("CARD_PAYMENT_URL"),
			PaymentSuccessURL: viper.GetString("PAYMENT_SUCCESS_URL"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}
