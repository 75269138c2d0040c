package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("API_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.GetServerAddr())
	assert.Equal(t, "gpt-3.5-turbo", cfg.Narrative.Model)
	assert.Equal(t, 0.5, cfg.Narrative.Temperature)
	assert.Equal(t, 500, cfg.Narrative.MaxTokens)
	assert.Equal(t, time.Hour, cfg.Cache.NarrativeCacheTTL)
	assert.Equal(t, "narrative-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
	assert.Equal(t, 5*time.Minute, cfg.Worker.ClaimMinIdle)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_FromEnvFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Chdir(dir)

	env := "API_HOST=127.0.0.1\nAPI_PORT=8181\nDB_HOST=db\nDB_PORT=5432\nDB_USER=u\nDB_PASSWORD=p\nDB_NAME=dash\nDB_SSLMODE=disable\nREDIS_HOST=cache\nREDIS_PORT=6380\nNARRATIVE_CACHE_TTL=120\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8181", cfg.GetServerAddr())
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=dash sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, 2*time.Minute, cfg.Cache.NarrativeCacheTTL)
}
