// Package chunk splits a section body into word-bounded chunks for
// embedding. Chunks follow Markdown block boundaries (blank lines) so code
// fences and tables stay whole whenever they fit.
package chunk

import "strings"

// DefaultChunkSize is the chunk size, in words, used when none is given.
const DefaultChunkSize = 512

// Chunker packs Markdown blocks into chunks of at most ChunkSize words.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to DefaultChunkSize if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk packs consecutive blocks of text into chunks. Blocks are joined
// with a blank line and keep their inner line structure. A single block
// longer than ChunkSize is split into runs of words.
func (c *Chunker) Chunk(text string) []string {
	var (
		chunks  []string
		current []string
		words   int
	)
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current, words = nil, 0
		}
	}

	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		n := len(strings.Fields(block))
		if n == 0 {
			continue
		}

		if n > c.ChunkSize {
			flush()
			chunks = append(chunks, c.splitWords(block)...)
			continue
		}
		if words+n > c.ChunkSize {
			flush()
		}
		current = append(current, block)
		words += n
	}
	flush()

	return chunks
}

func (c *Chunker) splitWords(block string) []string {
	fields := strings.Fields(block)
	var out []string
	for i := 0; i < len(fields); i += c.ChunkSize {
		end := min(i+c.ChunkSize, len(fields))
		out = append(out, strings.Join(fields[i:end], " "))
	}
	return out
}
