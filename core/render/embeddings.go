// Embeddings renderer: chunks every section body and embeds each chunk
// through an Ollama-compatible API. Output is JSON Lines, one record per
// chunk, ready to load into a retrieval index.

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/hwscrape/core"
	"github.com/gaurav-prasanna/hwscrape/core/chunk"
)

const (
	// DefaultEmbeddingsURL is the local Ollama embeddings endpoint.
	DefaultEmbeddingsURL = "http://localhost:11434/api/embeddings"
	embeddingTimeout     = 60 * time.Second
)

// EmbeddingsRenderer embeds section chunks.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	Endpoint  string
	client    *http.Client
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer. An empty endpoint
// means DefaultEmbeddingsURL.
func NewEmbeddingsRenderer(model string, chunkSize int, endpoint string) *EmbeddingsRenderer {
	if endpoint == "" {
		endpoint = DefaultEmbeddingsURL
	}
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		Endpoint:  endpoint,
		client:    &http.Client{Timeout: embeddingTimeout},
	}
}

// ollamaRequest is the request body for the Ollama embeddings API.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaResponse is the response body from the Ollama embeddings API.
type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// embeddingRecord is one output line. Section identity uses the same keys
// as the JSON renderer.
type embeddingRecord struct {
	Course    string    `json:"course"`
	Homework  int       `json:"hw"`
	Kind      core.Kind `json:"type"`
	Number    *int      `json:"number,omitempty"`
	Title     string    `json:"title"`
	Keyword   string    `json:"okpy_q,omitempty"`
	Chunk     int       `json:"chunk"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	Embedding []float64 `json:"embedding"`
}

// Render chunks each section body, prefixed with its heading so every
// chunk carries its question context, and embeds the chunks in order.
// Sections with an empty body are embedded by heading alone.
func (r *EmbeddingsRenderer) Render(sections []core.Section) ([]byte, error) {
	chunker := chunk.New(r.ChunkSize)
	ctx := context.Background()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, s := range sections {
		heading := fmt.Sprintf("%s HW %d %s", strings.ToUpper(s.Course), s.Homework, sectionHeading(s))
		chunks := chunker.Chunk(s.Body)
		if len(chunks) == 0 {
			chunks = []string{""}
		}

		for i, text := range chunks {
			prompt := strings.TrimSpace(heading + "\n\n" + text)
			embedding, err := r.embed(ctx, prompt)
			if err != nil {
				return nil, fmt.Errorf("embedding %s chunk %d: %w", heading, i+1, err)
			}

			rec := embeddingRecord{
				Course:    s.Course,
				Homework:  s.Homework,
				Kind:      s.Kind,
				Number:    s.Number,
				Title:     s.Title,
				Keyword:   s.Keyword,
				Chunk:     i + 1,
				Text:      text,
				Model:     r.Model,
				Embedding: embedding,
			}
			if err := enc.Encode(rec); err != nil {
				return nil, fmt.Errorf("encoding chunk: %w", err)
			}
		}
	}

	return buf.Bytes(), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.jsonl"
}

// embed calls the Ollama embedding API for a single text input.
func (r *EmbeddingsRenderer) embed(ctx context.Context, text string) ([]float64, error) {
	reqBody := ollamaRequest{
		Model:  r.Model,
		Prompt: text,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API returned %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}

	return ollamaResp.Embedding, nil
}
