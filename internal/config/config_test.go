package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("FOODSHARE_TEST_KEY", "")
	assert.Equal(t, "def", getEnv("FOODSHARE_TEST_KEY", "def"))

	t.Setenv("FOODSHARE_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("FOODSHARE_TEST_KEY", "def"))
}

func TestGetBool(t *testing.T) {
	cases := map[string]bool{
		"true":  true,
		"1":     true,
		"YES":   true,
		"false": false,
		"0":     false,
		"":      true, // default
		"maybe": true, // default
	}
	for in, want := range cases {
		t.Setenv("FOODSHARE_TEST_BOOL", in)
		assert.Equal(t, want, getBool("FOODSHARE_TEST_BOOL", true), "input %q", in)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("MODEL_DIR", "")
	t.Setenv("TRAINING_CSV_PATH", "")
	t.Setenv("TRAIN_PARTITION_BY_OWNER", "")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("MODEL_RELOAD_TOKEN", "")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, "ml_data.csv", cfg.TrainingCSV)
	assert.False(t, cfg.PartitionByOwner)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Empty(t, cfg.ModelReloadToken)
}
