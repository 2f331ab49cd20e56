package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	data := []byte("[]\n")

	t.Run("Stdout", func(t *testing.T) {
		var buf bytes.Buffer
		where, err := New(&buf).Write("", data, ".json")
		require.NoError(t, err)
		assert.Equal(t, "stdout", where)
		assert.Equal(t, "[]\n", buf.String())

		buf.Reset()
		_, err = New(&buf).Write("-", data, ".json")
		require.NoError(t, err)
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("File With Parents", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out", "fa23.json")
		where, err := New(nil).Write(dest, data, ".json")
		require.NoError(t, err)
		assert.Equal(t, dest, where)

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()
		where, err := New(nil).Write(dir, data, ".md")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sections.md"), where)
	})
}
