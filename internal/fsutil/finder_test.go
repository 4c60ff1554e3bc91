package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/officegraph/internal/fsutil"
	"github.com/vk/officegraph/internal/testutil"
)

func TestExpandPaths(t *testing.T) {
	t.Parallel()
	dir := testutil.WriteFiles(t, map[string]string{
		"a.office.hcl":        "",
		"nested/b.office.hcl": "",
		"notes.txt":           "",
	})
	explicit := filepath.Join(dir, "notes.txt")

	files, err := fsutil.ExpandPaths([]string{dir, explicit, filepath.Join(dir, "a.office.hcl")}, ".office.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.office.hcl"),
		filepath.Join(dir, "nested", "b.office.hcl"),
		explicit,
	}, files)
}

func TestExpandPaths_MissingPath(t *testing.T) {
	t.Parallel()
	_, err := fsutil.ExpandPaths([]string{filepath.Join(t.TempDir(), "missing")}, ".office.hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { _, _ = fsutil.FindFilesByExtension(t.TempDir(), "") })
}
