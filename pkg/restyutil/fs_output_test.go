package restyutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug", "nested")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	require.Equal(t, dir, out.Dir())

	out.Write("001_get.txt", "hello")
	contents, err := os.ReadFile(filepath.Join(dir, "001_get.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}
