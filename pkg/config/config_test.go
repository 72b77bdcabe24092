package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "segment", cfg.Similarity.Tokenizer)
	assert.Equal(t, 2, cfg.Similarity.MinTermLength)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "compare-requests", cfg.Kafka.Topics.CompareRequests)
	assert.Equal(t, 30*time.Second, cfg.Worker.JobTimeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9000
  writeTimeout: 5s
similarity:
  tokenizer: word
  minTermLength: 1
  stopWords: true
redis:
  enabled: false
  cacheTTL: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "word", cfg.Similarity.Tokenizer)
	assert.Equal(t, 1, cfg.Similarity.MinTermLength)
	assert.True(t, cfg.Similarity.StopWords)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PSC_SERVER_PORT", "7070")
	t.Setenv("PSC_SIMILARITY_TOKENIZER", "word")
	t.Setenv("PSC_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PSC_REDIS_ENABLED", "false")
	t.Setenv("PSC_BATCH_WORKERS", "16")
	t.Setenv("PSC_WORKER_JOB_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "word", cfg.Similarity.Tokenizer)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 16, cfg.Batch.Workers)
	assert.Equal(t, 5*time.Second, cfg.Worker.JobTimeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("similarity:\n  tokenizer: bigram\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "similarity.tokenizer")

	t.Setenv("PSC_BATCH_WORKERS", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "batch.workers")
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", p.DSN())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PSC_DOTENV_TEST_PORT=6060\nPSC_DOTENV_TEST_KEPT=fromfile\n"), 0o644))
	t.Setenv("PSC_DOTENV_TEST_KEPT", "fromenv")
	t.Cleanup(func() { os.Unsetenv("PSC_DOTENV_TEST_PORT") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "6060", os.Getenv("PSC_DOTENV_TEST_PORT"))
	assert.Equal(t, "fromenv", os.Getenv("PSC_DOTENV_TEST_KEPT"))
}
