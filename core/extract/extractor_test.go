package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentExtractor_Extract(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "hw02.html"))
	require.NoError(t, err)

	out, err := NewContentExtractor().Extract(string(raw))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<body"))
	assert.Contains(t, out, "Q1: Product")
	assert.NotContains(t, out, "Course Staff")
	assert.NotContains(t, out, "<button")
}
