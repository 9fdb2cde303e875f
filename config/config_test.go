package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FlattensYAMLAndEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opsboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
db:
  type: sqlite
  sqlite_path: /tmp/ops.db
accepted_origins:
  - http://localhost:5173
  - https://ops.example.com
dashboard_session_ttl: 6h
`), 0o600))

	t.Setenv("DB_TYPE", "postgres")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, "postgres", GetString(c, "DB_TYPE", ""))
	assert.Equal(t, "/tmp/ops.db", GetString(c, "DB_SQLITE_PATH", ""))
	assert.Equal(t, []string{"http://localhost:5173", "https://ops.example.com"}, GetList(c, "ACCEPTED_ORIGINS"))
	assert.Equal(t, 6*time.Hour, GetDuration(c, "DASHBOARD_SESSION_TTL", time.Hour))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetters_Defaults(t *testing.T) {
	c := map[string]string{
		"BAD_INT":   "x",
		"EMPTY":     "",
		"SECS":      "45",
		"RATIO":     "0.25",
		"ENABLED":   "true",
		"BAD_BOOL":  "maybe",
		"BAD_DELAY": "soon",
	}

	assert.Equal(t, 7, GetInt(c, "BAD_INT", 7))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "EMPTY", "fallback"))
	assert.Equal(t, 45*time.Second, GetDuration(c, "SECS", time.Minute))
	assert.Equal(t, time.Minute, GetDuration(c, "BAD_DELAY", time.Minute))
	assert.InDelta(t, 0.25, GetFloat(c, "RATIO", 1), 1e-9)
	assert.True(t, GetBool(c, "ENABLED", false))
	assert.True(t, GetBool(c, "BAD_BOOL", true))
	assert.Empty(t, GetList(c, "MISSING"))
}
