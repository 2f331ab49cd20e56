package render

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingsRenderer_Render(t *testing.T) {
	var (
		mu      sync.Mutex
		prompts []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		mu.Lock()
		prompts = append(prompts, req.Prompt)
		mu.Unlock()

		json.NewEncoder(w).Encode(ollamaResponse{Embedding: []float64{0.25, -0.5}})
	}))
	defer server.Close()

	r := NewEmbeddingsRenderer("nomic-embed-text", 512, server.URL)
	out, err := r.Render(sampleSections())
	require.NoError(t, err)

	var records []embeddingRecord
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var rec embeddingRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, records, 3)
	assert.Equal(t, "product", records[1].Keyword)
	assert.Equal(t, 1, records[1].Chunk)
	assert.Equal(t, []float64{0.25, -0.5}, records[1].Embedding)
	assert.Empty(t, records[2].Text)

	require.Len(t, prompts, 3)
	assert.Equal(t, "61A HW 2 Instructions\n\nRead <carefully> & submit.", prompts[0])
	assert.Equal(t, "88C HW 2 Submit", prompts[2])

	assert.Equal(t, ".embeddings.jsonl", r.Extension())
}

func TestEmbeddingsRenderer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewEmbeddingsRenderer("missing", 0, server.URL).Render(sampleSections())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
