package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortableHome(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LLMCOMPARE_HOME", root)

	assert.Equal(t, filepath.Join(root, "config"), ConfigDir())
	assert.Equal(t, filepath.Join(root, "state"), StateDir())
	assert.Equal(t, filepath.Join(root, "state", "logs"), LogDir())
	assert.Equal(t, filepath.Join(root, "config", "styles"), StylesDir())
}

func TestXDGHomes(t *testing.T) {
	cfg := t.TempDir()
	st := t.TempDir()
	t.Setenv("LLMCOMPARE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("XDG_STATE_HOME", st)

	assert.Equal(t, filepath.Join(cfg, "llmcompare"), ConfigDir())
	assert.Equal(t, filepath.Join(st, "llmcompare"), StateDir())
}
