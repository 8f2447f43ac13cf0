package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewLevelParsing(t *testing.T) {
	log, err := New(&Config{Level: "warn"})
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = New(&Config{Level: "not-a-level"})
	assert.Error(t, err)
}

func TestNewDebugOverridesLevel(t *testing.T) {
	log, err := New(&Config{Level: "error", Debug: true})
	require.NoError(t, err)

	// Debug events must be enabled regardless of the configured level.
	assert.True(t, log.Debug().Enabled())
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.log")

	log, err := New(&Config{Level: "info", Output: path})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestSetDebug(t *testing.T) {
	log := NewTestLogger()

	log.SetDebug(true)
	assert.True(t, log.Debug().Enabled())

	log.SetDebug(false)
	assert.False(t, log.Debug().Enabled())
}

func TestWithComponent(t *testing.T) {
	log := NewTestLogger()

	child := log.WithComponent("capture")
	assert.IsType(t, zerolog.Logger{}, child)
}
