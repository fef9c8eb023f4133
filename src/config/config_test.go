package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(newViper())

	assert.Equal(t, "8888", cfg.AppURI)
	assert.Equal(t, "FeedbackDB", cfg.MongoDB)
	assert.Equal(t, "mongo", cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.SeedSampleData)
}

func TestFromViperOverrides(t *testing.T) {
	v := newViper()
	v.Set("STORAGE", "Memory")
	v.Set("APP_BASE_URL", "https://feedback.example.edu/")
	v.Set("TIMEZONE", "UTC")
	v.Set("JWT_TTL", "2h")
	v.Set("SMTP_HOST", "smtp.example.edu")
	v.Set("SMTP_FROM", "noreply@example.edu")

	cfg := FromViper(v)

	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "https://feedback.example.edu", cfg.AppBaseURL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestFromViperBadTimezoneFallsBack(t *testing.T) {
	v := viper.New()
	v.Set("TIMEZONE", "Mars/Olympus")

	cfg := FromViper(v)
	assert.Equal(t, time.Local, cfg.Location)
}
