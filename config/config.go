package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DBURL       string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	JWTSecret    string
	JWTExpiry    time.Duration
	SitePassword string

	ReminderCron     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	ReminderNotifyTo string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DBURL:       os.Getenv("DB_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiry:    time.Duration(getInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		SitePassword: os.Getenv("SITE_PASSWORD"),

		ReminderCron:     getEnv("REMINDER_CRON", "0 9 * * *"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_PHONE_NUMBER"),
		ReminderNotifyTo: os.Getenv("REMINDER_NOTIFY_TO"),
	}
	if cfg.DBDriver == "sqlite" && cfg.DBURL == "" {
		cfg.DBURL = "tilecrm.db"
	}
	return cfg
}

func (c Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != "" && c.ReminderNotifyTo != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
			return def
		}
		return n
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
