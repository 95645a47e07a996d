package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 24, cfg.TokenTTLHrs)
	assert.Equal(t, "uploads", cfg.UploadsDir)
	assert.Empty(t, cfg.SwaggerHost)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("TOKEN_TTL_HOURS", "48")
	t.Setenv("SWAGGER_HOST", "api.vipmotors.example")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 48, cfg.TokenTTLHrs)
	assert.Equal(t, "api.vipmotors.example", cfg.SwaggerHost)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "soon")

	cfg := Load()
	assert.Equal(t, 24, cfg.TokenTTLHrs)
}
