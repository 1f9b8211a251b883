package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_CONN", "host=db port=5432 user=svc dbname=bookshelf")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("OPENLIBRARY_URL", "https://openlibrary.org")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := NewConfig()
	require.NoError(t, err)
	// Empty values set explicitly still come through; unset ones default.
	assert.Equal(t, "", cfg.Port)
	assert.NotEmpty(t, cfg.OpenLibraryURL)
}

func TestSMTPEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.SMTPEnabled())

	cfg.SMTPHost = "smtp.example.com"
	assert.True(t, cfg.SMTPEnabled())
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a,b"))
	assert.Equal(t, []string{"a"}, splitOrigins("a,,  "))
}
