package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "OPENAI_RPS", "OPENAI_BURST", "PROVIDER_TIMEOUT", "DATABASE_URL", "CORS_ORIGINS", "UI_SESSIONS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 2.0, cfg.OpenAIRPS)
	assert.Equal(t, 4, cfg.OpenAIBurst)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 1024, cfg.UISessions)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "  sk-test ")
	t.Setenv("OPENAI_RPS", "0.5")
	t.Setenv("OPENAI_BURST", "nope")
	t.Setenv("PROVIDER_TIMEOUT", "15s")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.Equal(t, 0.5, cfg.OpenAIRPS)
	assert.Equal(t, 4, cfg.OpenAIBurst)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
