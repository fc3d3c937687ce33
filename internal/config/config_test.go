package config

import (
	"io"
	"net/http/httptest"
	"testing"

	"SafeSphere/internal/api/voice"
	"SafeSphere/pkg/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorLanguageCode(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(voice.SetLanguageRequest{Language: "en-US"}))
	assert.Error(t, v.Struct(voice.SetLanguageRequest{Language: "en-us"}))
	assert.Error(t, v.Struct(voice.SetLanguageRequest{Language: "english"}))
	assert.Error(t, v.Struct(voice.SetLanguageRequest{}))
}

func TestVoiceConfigFromEnv(t *testing.T) {
	t.Setenv("VOICE_MAX_RECOGNIZER_RETRIES", "")
	t.Setenv("VOICE_HISTORY_SIZE", "")
	cfg := voiceConfigFromEnv()
	assert.Equal(t, session.DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, session.DefaultHistorySize, cfg.HistorySize)

	t.Setenv("VOICE_MAX_RECOGNIZER_RETRIES", "5")
	t.Setenv("VOICE_HISTORY_SIZE", "-1")
	cfg = voiceConfigFromEnv()
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, session.DefaultHistorySize, cfg.HistorySize)
}

func TestLanguageRegistryOption(t *testing.T) {
	t.Setenv("VOICE_DEFAULT_LANGUAGE", "fr-FR")
	s := &Server{}
	require.NoError(t, WithLanguageRegistry()(s))
	assert.Equal(t, "fr-FR", s.languages.Default().Code)

	t.Setenv("VOICE_DEFAULT_LANGUAGE", "pt-BR")
	assert.Error(t, WithLanguageRegistry()(&Server{}))
}

func TestNewServerRequiresFiberAndLogger(t *testing.T) {
	_, err := NewServer()
	assert.Error(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := NewServer(WithFiber(NewFiber(logger)), WithLogger(logger), WithMiddleware(), WithUtils())
	require.NoError(t, err)

	s.setupHealthCheck()
	resp, err := s.engine.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
