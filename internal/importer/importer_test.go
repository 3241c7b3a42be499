package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPlainText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "draft.txt")
	content := "First paragraph.\n\nSecond paragraph."
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadRejectsBrokenPDF(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := Read(path)
	assert.Error(t, err)
}
