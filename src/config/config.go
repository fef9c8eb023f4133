package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppURI         string
	AllowedOrigins string
	AppBaseURL     string

	Storage           string // mongo | memory
	MongoURI          string
	MongoDB           string
	MongoTransactions bool

	RedisURI string

	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool

	Location *time.Location

	SMTP SMTPConfig

	SeedAdmin      AdminSeed
	SeedSampleData bool

	// LoginRateLimit is the number of login attempts allowed per IP per minute.
	LoginRateLimit int
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port != 0 && s.From != ""
}

type AdminSeed struct {
	Email    string
	Password string
	FullName string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_URI", "8888")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")
	v.SetDefault("STORAGE", "mongo")
	v.SetDefault("MONGO_DB", "FeedbackDB")
	v.SetDefault("MONGO_TRANSACTIONS", false)
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("SEED_SAMPLE_DATA", false)
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.AutomaticEnv()
	return v
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	return FromViper(newViper())
}

func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		AppURI:            v.GetString("APP_URI"),
		AllowedOrigins:    v.GetString("ALLOWED_ORIGINS"),
		AppBaseURL:        strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		Storage:           strings.ToLower(v.GetString("STORAGE")),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDB:           v.GetString("MONGO_DB"),
		MongoTransactions: v.GetBool("MONGO_TRANSACTIONS"),
		RedisURI:          v.GetString("REDIS_URI"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            v.GetDuration("JWT_TTL"),
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		Location:          time.Local,
		SMTP: SMTPConfig{
			Host: v.GetString("SMTP_HOST"),
			Port: v.GetInt("SMTP_PORT"),
			User: v.GetString("SMTP_USER"),
			Pass: v.GetString("SMTP_PASS"),
			From: v.GetString("SMTP_FROM"),
		},
		SeedAdmin: AdminSeed{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
			FullName: v.GetString("ADMIN_NAME"),
		},
		SeedSampleData: v.GetBool("SEED_SAMPLE_DATA"),
		LoginRateLimit: v.GetInt("LOGIN_RATE_LIMIT"),
	}

	if tz := v.GetString("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("⚠️ Unknown TIMEZONE %q, using server local time", tz)
		} else {
			cfg.Location = loc
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET not set, using development secret")
	}
	return cfg
}
