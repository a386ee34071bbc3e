package entropy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestResolveKeepsExplicitSeed(t *testing.T) {
	if got := Resolve(nil, 42); got != 42 {
		t.Errorf("Resolve(nil, 42) = %d, want 42", got)
	}
	if got := Resolve(nil, 0); got <= 0 {
		t.Errorf("Resolve(nil, 0) = %d, want a positive seed", got)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if c.Enabled() {
		t.Error("nil client reports enabled")
	}
	if NewClient("") != nil {
		t.Error("NewClient with empty key should return nil")
	}
	if got := c.Seed(); got <= 0 {
		t.Errorf("nil client Seed() = %d, want positive", got)
	}
}

func TestClientUsesPool(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		var req struct {
			Method string `json:"method"`
			Params struct {
				APIKey string `json:"apiKey"`
				N      int    `json:"n"`
			} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Method != "generateIntegers" || req.Params.APIKey != "key" {
			t.Errorf("unexpected request %+v", req)
		}

		data := make([]int64, req.Params.N)
		for i := range data {
			data[i] = int64(i + 1)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"random": map[string]any{"data": data}},
		})
	}))
	defer srv.Close()

	c := NewClient("key").WithEndpoint(srv.URL)
	if !c.Enabled() {
		t.Fatal("client with key not enabled")
	}

	first := c.Seed()
	if want := int64(1*seedPart + 2); first != want {
		t.Errorf("first seed = %d, want %d", first, want)
	}
	for i := 1; i < batchSize/2; i++ {
		c.Seed()
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("API called %d times for one batch, want 1", n)
	}

	c.Seed()
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("API called %d times after draining the pool, want 2", n)
	}
}

func TestClientFallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := NewClient("key").WithEndpoint(srv.URL)
	if got := Resolve(c, 0); got <= 0 {
		t.Errorf("Resolve with failing API = %d, want positive crypto seed", got)
	}
}
