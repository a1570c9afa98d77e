package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "openai", cfg.GetSummarizer().Provider)

	openai := cfg.GetOpenAI()
	assert.Equal(t, "gpt-3.5-turbo", openai.ModelName)
	assert.Equal(t, 100, openai.MaxTokens)
	assert.Equal(t, float32(0.1), openai.Temperature)
	assert.Equal(t, 4096, openai.MaxInputSize)

	gmail := cfg.GetGmail()
	assert.Equal(t, "credentials.json", gmail.CredentialsFile)
	assert.Equal(t, "token.json", gmail.TokenFile)
	assert.Equal(t, "INBOX", gmail.Label)

	ocr := cfg.GetOCR()
	assert.Equal(t, "tesseract", ocr.Binary)
	assert.Equal(t, "eng", ocr.Language)
	assert.Equal(t, float64(300), ocr.PDFDPI)

	storage := cfg.GetStorage()
	assert.Equal(t, "csv", storage.Type)
	assert.Equal(t, "data/emails.csv", storage.CSVPath)

	sync, err := cfg.GetSync()
	require.NoError(t, err)
	assert.Equal(t, int64(100), sync.PageLimit)
	assert.Equal(t, 30*time.Second, sync.IdleDelay)
	assert.Equal(t, "data/last_timestamp.txt", sync.WatermarkPath)
	assert.Empty(t, sync.IgnoreSenders)
	assert.Empty(t, sync.IgnoreSubjectKeywords)
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("summarizer.provider", "gemini")
	v.Set("sync.idle_delay", "5m")
	v.Set("sync.ignore_senders", []string{"noreply@"})
	cfg := NewFromViper(v)

	assert.Equal(t, "gemini", cfg.GetSummarizer().Provider)

	sync, err := cfg.GetSync()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, sync.IdleDelay)
	assert.Equal(t, []string{"noreply@"}, sync.IgnoreSenders)
}

func TestNewFromFile(t *testing.T) {
	t.Run("explicit path is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("summarizer:\n  provider: bedrock\n"), 0o644))

		cfg, err := NewFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "bedrock", cfg.GetSummarizer().Provider)
		assert.Equal(t, path, cfg.GetViper().ConfigFileUsed())

		// Keys not in the file fall back to defaults.
		assert.Equal(t, "tesseract", cfg.GetOCR().Binary)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestBadIdleDelay(t *testing.T) {
	v := NewEmptyViper()
	v.Set("sync.idle_delay", "soon")
	cfg := NewFromViper(v)

	_, err := cfg.GetSync()
	assert.Error(t, err)
}
