package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withoutDotEnv(t *testing.T) {
	t.Helper()
	original := loadEnv
	loadEnv = func(...string) error { return os.ErrNotExist }
	t.Cleanup(func() { loadEnv = original })
}

func TestLoadDefaults(t *testing.T) {
	withoutDotEnv(t)
	t.Setenv("USERS_TABLE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SYNC_TIMEOUT", "")
	t.Setenv("SEARCH_SYNC_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Users", cfg.UsersTable)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Sync.Timeout)
	assert.Empty(t, cfg.Sync.URL)
}

func TestLoadOverrides(t *testing.T) {
	withoutDotEnv(t)
	t.Setenv("USERS_TABLE", "ArtistsStaging")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SYNC_TIMEOUT", "750ms")
	t.Setenv("SEARCH_SYNC_URL", "https://search.example.com/records")
	t.Setenv("SEARCH_SYNC_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ArtistsStaging", cfg.UsersTable)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 750*time.Millisecond, cfg.Sync.Timeout)
	assert.Equal(t, "https://search.example.com/records", cfg.Sync.URL)
	assert.Equal(t, "secret", cfg.Sync.AuthToken)
}

func TestLoadInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Bad log level", key: "LOG_LEVEL", value: "chatty"},
		{name: "Bad timeout", key: "SYNC_TIMEOUT", value: "soon"},
		{name: "Negative timeout", key: "SYNC_TIMEOUT", value: "-1s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			withoutDotEnv(t)
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("SYNC_TIMEOUT", "")
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnvFailure(t *testing.T) {
	original := loadEnv
	loadEnv = func(...string) error { return errors.New("line 3: unexpected character") }
	t.Cleanup(func() { loadEnv = original })

	_, err := Load()
	assert.Error(t, err)
}
