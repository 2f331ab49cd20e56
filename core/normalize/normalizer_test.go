package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNormalizer_Normalize(t *testing.T) {
	n := New()

	t.Run("Headings And Emphasis", func(t *testing.T) {
		md, err := n.Normalize("<h2>Q1: Product</h2><p>Use <strong>recursion</strong>.</p>", "")
		require.NoError(t, err)
		assert.Contains(t, md, "## Q1: Product")
		assert.Contains(t, md, "**recursion**")
	})

	t.Run("Relative Links Resolved", func(t *testing.T) {
		md, err := n.Normalize(`<p><a href="hw02.zip">zip</a></p>`, "https://cs61a.org/hw/hw02/")
		require.NoError(t, err)
		assert.Contains(t, md, "https://cs61a.org")
		assert.Contains(t, md, "hw02.zip")
	})
}
