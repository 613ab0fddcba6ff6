package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Data:      DataConfig{Dir: "data"},
		Converter: ConverterConfig{MaxWordLen: 15, Tone: "sandhi"},
		Server:    ServerConfig{Port: 18484, CacheTTL: time.Minute, CacheCleanup: time.Minute},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  dir: /srv/wupin
converter:
  max_word_len: 8
  tone: base
server:
  port: 9000
  cache_ttl: 5m
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/wupin", cfg.Data.Dir)
	assert.Equal(t, 8, cfg.Converter.MaxWordLen)
	assert.Equal(t, "base", cfg.Converter.Tone)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Server.CacheCleanup)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 15, cfg.Converter.MaxWordLen)
	assert.Equal(t, "sandhi", cfg.Converter.Tone)
	assert.Equal(t, 18484, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Server.CacheTTL)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("WU_PINYIN_DATA", "/opt/data")
	t.Setenv("WU_PINYIN_TONE", "none")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/data", cfg.Data.Dir)
	assert.Equal(t, "none", cfg.Converter.Tone)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidTone(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("WU_PINYIN_TONE", "rising")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converter.tone")
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Data.Dir = ""
	cfg.Converter.MaxWordLen = 0
	cfg.Server.Port = 70000
	cfg.Server.CacheTTL = -time.Second
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"data.dir", "max_word_len", "server.port", "cache_ttl"} {
		assert.Contains(t, err.Error(), want)
	}
}
