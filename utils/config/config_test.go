package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("AUDIO_BACKEND", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, LLMPollinations, cfg.LLMProvider)
	assert.Equal(t, AudioNone, cfg.AudioBackend)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 6, cfg.HistoryWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.EnrichSearch)
	assert.False(t, cfg.EnrichHandlers)
}

func TestLoad_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestLoad_GoogleAudioRequiresRedis(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("AUDIO_BACKEND", "google")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "nope")
	_, err := Load()
	assert.Error(t, err)
}

func TestEnvDurationOrDefault(t *testing.T) {
	t.Setenv("X_TIMEOUT", "5")
	assert.Equal(t, 5*time.Second, envDurationOrDefault("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "250ms")
	assert.Equal(t, 250*time.Millisecond, envDurationOrDefault("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "soon")
	assert.Equal(t, time.Second, envDurationOrDefault("X_TIMEOUT", time.Second))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
