package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TRAIL_TEST_DIR", "/tmp/statements")

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "statements"), ExpandPath("~/statements"))
	assert.Equal(t, "/tmp/statements/jan.qfx", ExpandPath("$TRAIL_TEST_DIR/jan.qfx"))
	assert.Equal(t, "relative/path.ofx", ExpandPath("relative/path.ofx"))
	assert.Equal(t, "", ExpandPath(""))
}
