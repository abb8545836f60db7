package initializers

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreFirebase = "firebase"
)

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Timezone string `envconfig:"APP_TIMEZONE" default:"Asia/Riyadh"`
	Secret   string `envconfig:"SECRET"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	DatabaseURL  string `envconfig:"DB_URL"`

	FirebaseServiceAccountPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	FirebaseDatabaseURL        string `envconfig:"FIREBASE_DATABASE_URL"`
	FirebaseAuthEnabled        bool   `envconfig:"FIREBASE_AUTH_ENABLED" default:"false"`
	FirebaseEnabled            bool   `envconfig:"FIREBASE_ENABLED" default:"false"`

	RedisAddress     string        `envconfig:"REDIS_ADDRESS"`
	RedisUsername    string        `envconfig:"REDIS_USERNAME"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	ScheduleCacheTTL time.Duration `envconfig:"SCHEDULE_CACHE_TTL" default:"720h"`

	PrayerTimesBaseURL string  `envconfig:"PRAYER_TIMES_BASE_URL" default:"https://api.aladhan.com/v1"`
	PrayerTimesMethod  int     `envconfig:"PRAYER_TIMES_METHOD" default:"2"`
	DefaultLatitude    float64 `envconfig:"DEFAULT_LATITUDE" default:"24.7136"`
	DefaultLongitude   float64 `envconfig:"DEFAULT_LONGITUDE" default:"46.6753"`

	MQTTBrokerURL   string `envconfig:"MQTT_BROKER_URL"`
	MQTTTopicPrefix string `envconfig:"MQTT_TOPIC_PREFIX" default:"salah"`

	ResendAPIKey    string `envconfig:"RESEND_API_KEY"`
	ResendFromEmail string `envconfig:"RESEND_FROM_EMAIL" default:"Salah Tracker <noreply@salahtracker.app>"`

	TickInterval          time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
	StatusRefreshInterval time.Duration `envconfig:"STATUS_REFRESH_INTERVAL" default:"5s"`
	AudioSaveInterval     time.Duration `envconfig:"AUDIO_SAVE_INTERVAL" default:"1s"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

var Config AppConfig

// LoadEnv reads .env (when present) and the process environment into Config.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, reading configuration from the environment")
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	Config = cfg

	InitLogger(Config.LogLevel, Config.AppEnv)
}

func LoadConfig() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DB_URL is required when STORE_BACKEND=%s", StorePostgres)
		}
	case StoreFirebase:
		if c.FirebaseDatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required when STORE_BACKEND=%s", StoreFirebase)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.Secret == "" && !c.FirebaseAuthEnabled {
		return fmt.Errorf("SECRET is required unless FIREBASE_AUTH_ENABLED is set")
	}
	if c.DefaultLatitude < -90 || c.DefaultLatitude > 90 {
		return fmt.Errorf("DEFAULT_LATITUDE out of range: %v", c.DefaultLatitude)
	}
	if c.DefaultLongitude < -180 || c.DefaultLongitude > 180 {
		return fmt.Errorf("DEFAULT_LONGITUDE out of range: %v", c.DefaultLongitude)
	}
	if c.TickInterval <= 0 || c.StatusRefreshInterval <= 0 || c.AudioSaveInterval <= 0 {
		return fmt.Errorf("tick, status refresh and audio save intervals must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// NeedsFirebase reports whether any component depends on the Firebase app.
func (c AppConfig) NeedsFirebase() bool {
	return c.FirebaseEnabled || c.FirebaseAuthEnabled || c.StoreBackend == StoreFirebase
}

// Location returns the configured timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
