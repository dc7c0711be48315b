package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableWritesLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	require.NoError(t, Enable(path))
	t.Cleanup(Disable)
	assert.True(t, Enabled())

	Log("tick", "bpm=%d", 120)
	for range 3 {
		LogEvery(3, "gate", "edge")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bpm=120")
	assert.Contains(t, string(data), "edge (every 3, count=3)")
}

func TestDisabledLogIsSilent(t *testing.T) {
	Disable()
	assert.False(t, Enabled())

	// Nothing to write to; must not panic.
	Log("tick", "ignored")
	LogEvery(1, "tick", "ignored")
}
