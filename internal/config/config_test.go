package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"RECORD_ENV", "NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "NEO4J_LABEL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX",
}

// clearEnv blanks every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, "Record", cfg.Neo4jLabel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "record:", cfg.RedisPrefix)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("RECORD_ENV", "production")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "secret", cfg.Neo4jPassword)
	assert.Equal(t, 4, cfg.RedisDB)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is set, even to "".
	require.NoError(t, os.Unsetenv("REDIS_PREFIX"))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REDIS_PREFIX=dotenv:\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv:", cfg.RedisPrefix)
}

func TestLoad_InvalidInt(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_DB", "two")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestValidate(t *testing.T) {
	full := Config{
		Neo4jURI:      "bolt://localhost:7687",
		Neo4jUser:     "neo4j",
		Neo4jPassword: "secret",
		RedisAddr:     "localhost:6379",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		backend string
		wantErr bool
	}{
		{"memory", func(*Config) {}, BackendMemory, false},
		{"neo4j", func(*Config) {}, BackendNeo4j, false},
		{"redis", func(*Config) {}, BackendRedis, false},
		{"neo4j no password", func(c *Config) { c.Neo4jPassword = "" }, BackendNeo4j, true},
		{"neo4j no uri", func(c *Config) { c.Neo4jURI = "" }, BackendNeo4j, true},
		{"redis no addr", func(c *Config) { c.RedisAddr = "" }, BackendRedis, true},
		{"redis negative db", func(c *Config) { c.RedisDB = -1 }, BackendRedis, true},
		{"unknown", func(*Config) {}, "etcd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			err := cfg.Validate(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, full.Validate("etcd"), ErrUnknownBackend)
}
