// Package entropy resolves generation seeds. An explicit seed always wins;
// otherwise seeds come from random.org when an API key is configured, with
// crypto/rand as the fallback.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

	// random.org integers are capped at 1e9, so each seed is built from a pair.
	seedPart  = 1_000_000_000
	batchSize = 32
)

// Client provides seeds from random.org with a local pool.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu   sync.Mutex
	pool []int64
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the client at a different JSON-RPC URL.
func (c *Client) WithEndpoint(url string) *Client {
	if c != nil {
		c.endpoint = url
	}
	return c
}

// Seed returns a positive seed. Uses the pool, refilling from random.org
// when empty. Falls back to crypto/rand on API failure.
func (c *Client) Seed() int64 {
	if c == nil {
		return cryptoSeed()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) == 0 {
		c.refill()
	}

	if len(c.pool) == 0 {
		return cryptoSeed()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

func (c *Client) refill() {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      batchSize,
			"min":    0,
			"max":    seedPart - 1,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		slog.Debug("random.org marshal failed", "error", err)
		return
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("random.org fetch failed", "error", err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("random.org read failed", "error", err)
		return
	}

	var result struct {
		Result struct {
			Random struct {
				Data []int64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		slog.Debug("random.org parse failed", "error", err)
		return
	}

	if result.Error != nil {
		slog.Debug("random.org API error", "error", result.Error.Message)
		return
	}

	data := result.Result.Random.Data
	for i := 0; i+1 < len(data); i += 2 {
		seed := data[i]*seedPart + data[i+1]
		if seed > 0 {
			c.pool = append(c.pool, seed)
		}
	}
	slog.Debug("random.org seed pool refilled", "count", len(c.pool))
}

// cryptoSeed generates a positive seed using crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to the clock.
		return time.Now().UnixNano()&(1<<62-1) | 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		return 1
	}
	return n
}

// CryptoSeed returns a seed using crypto/rand (no API needed).
func CryptoSeed() int64 {
	return cryptoSeed()
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Resolve returns seed unchanged when it is non-zero, otherwise a fresh
// seed from the client if available, or crypto/rand.
func Resolve(c *Client, seed int64) int64 {
	if seed != 0 {
		return seed
	}
	if c.Enabled() {
		return c.Seed()
	}
	return cryptoSeed()
}
