package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "s3cret",
		"database": {"host": "localhost", "port": 5432, "user": "u", "password": "p", "db_name": "d"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, "http://localhost:8080", cfg.AppBaseURL)
	require.Equal(t, "local", cfg.FileStore.Type)
	require.Equal(t, 60, cfg.AI.TimeoutSeconds)
	require.Equal(t, "*/10 * * * *", cfg.Jobs.EmbeddingSyncSpec)
}

func TestLoadRejectsProviderWithoutData(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "s3cret",
		"database": {"host": "localhost"},
		"ai": {"provider": "gemini", "model": "gemini-2.0-flash"}
	}`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ai.data is required")
}

func TestLoadRejectsMissingEssentials(t *testing.T) {
	for name, content := range map[string]string{
		"no port":     `{"jwt_secret": "s", "database": {"host": "h"}}`,
		"no secret":   `{"port": 1, "database": {"host": "h"}}`,
		"no database": `{"port": 1, "jwt_secret": "s"}`,
	} {
		_, err := Load(writeConfig(t, content))
		require.Error(t, err, name)
	}
}
