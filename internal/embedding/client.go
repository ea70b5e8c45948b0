package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the embedding service configuration.
type Config struct {
	BaseURL      string
	Model        string
	ProbeRetries int
	ProbeDelay   time.Duration
	ProbeTimeout time.Duration
	EmbedTimeout time.Duration
}

// DefaultConfig returns the default configuration for a local Ollama
// instance.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:11434",
		Model:        "nomic-embed-text",
		ProbeRetries: 10,
		ProbeDelay:   5 * time.Second,
		ProbeTimeout: 5 * time.Second,
		EmbedTimeout: 30 * time.Second,
	}
}

// Client talks to an Ollama-compatible embedding service. Readiness is probed
// once at startup; if the probe exhausts its retries the client enters
// degraded mode and every later Embed call returns nil without touching the
// network.
type Client struct {
	cfg         Config
	probeClient *http.Client
	embedClient *http.Client
	degraded    bool
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.ProbeRetries == 0 {
		cfg.ProbeRetries = def.ProbeRetries
	}
	if cfg.ProbeDelay == 0 {
		cfg.ProbeDelay = def.ProbeDelay
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = def.ProbeTimeout
	}
	if cfg.EmbedTimeout == 0 {
		cfg.EmbedTimeout = def.EmbedTimeout
	}
	return &Client{
		cfg:         cfg,
		probeClient: &http.Client{Timeout: cfg.ProbeTimeout},
		embedClient: &http.Client{Timeout: cfg.EmbedTimeout},
	}
}

// Ready probes the service liveness endpoint until it answers or the retries
// run out. Call it once before serving; it is not safe to race with Embed.
func (c *Client) Ready(ctx context.Context) bool {
	for attempt := 1; attempt <= c.cfg.ProbeRetries; attempt++ {
		fmt.Printf("Checking embedding service (attempt %d/%d)...\n", attempt, c.cfg.ProbeRetries)
		if c.probe(ctx) {
			fmt.Println("Embedding service is reachable.")
			return true
		}
		if attempt < c.cfg.ProbeRetries {
			select {
			case <-time.After(c.cfg.ProbeDelay):
			case <-ctx.Done():
				c.degraded = true
				return false
			}
		}
	}
	c.degraded = true
	return false
}

// Degraded reports whether the readiness probe gave up.
func (c *Client) Degraded() bool {
	return c.degraded
}

// Embed returns the embedding vector for text, or nil on any transport
// failure, timeout, or unrecognized response shape. Embedding failure is an
// expected outcome, not an error.
func (c *Client) Embed(ctx context.Context, text string) []float64 {
	if c.degraded {
		return nil
	}

	reqBody, err := json.Marshal(map[string]string{
		"model":  c.cfg.Model,
		"prompt": text,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/embeddings", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.embedClient.Do(req)
	if err != nil {
		fmt.Printf("Embedding error: %v\n", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		fmt.Printf("Embedding service returned status: %s\n", resp.Status)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return parseEmbedding(data)
}

func (c *Client) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		fmt.Printf("Embedding service not reachable: %v\n", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// parseEmbedding normalizes the three response shapes the service may
// produce: an object with a named vector field, a list of vectors (first one
// taken), or a bare list of floats.
func parseEmbedding(data []byte) []float64 {
	var named struct {
		Embedding  []float64       `json:"embedding"`
		Embeddings json.RawMessage `json:"embeddings"`
	}
	if err := json.Unmarshal(data, &named); err == nil {
		if len(named.Embedding) > 0 {
			return named.Embedding
		}
		if len(named.Embeddings) > 0 {
			return parseVector(named.Embeddings)
		}
		return nil
	}
	return parseVector(data)
}

func parseVector(raw json.RawMessage) []float64 {
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat
	}
	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0]
	}
	return nil
}
