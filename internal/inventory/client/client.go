package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/platform/logger"
)

// Client talks to the inventory API and mirrors the web client's data hook:
// it keeps one cached copy of the item collection, invalidates it wholesale
// on every mutation and refetches the full list rather than patching locally.
// Correctness over latency.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	items []domain.InventoryItem
	fresh bool

	adding    atomic.Bool
	updating  atomic.Bool
	deleting  atomic.Bool
	adjusting atomic.Bool
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// envelope matches the API's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

// APIError is a non-2xx response decoded from the failure envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory api returned status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request to inventory api: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Client.do: "+method+" "+path+" failed", err)
		return fmt.Errorf("failed to call inventory api: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response from inventory api: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Items returns the cached collection, fetching from the API when the cache
// is cold or has been invalidated by a mutation.
func (c *Client) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	c.mu.RLock()
	if c.fresh {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()
	return c.Refresh(ctx)
}

// Refresh unconditionally refetches the full list and replaces the cache.
func (c *Client) Refresh(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &items); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items = items
	c.fresh = true
	c.mu.Unlock()
	return items, nil
}

// LowStockItems queries the server-side predicate directly; it is not served
// from the local cache.
func (c *Client) LowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory/low-stock", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory/"+id, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// invalidate drops the cached collection after a mutation; the next read
// refetches.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.fresh = false
	c.mu.Unlock()
}

// mutate runs op with its in-flight flag set, then invalidates and
// refetches the collection. The returned bool reports whether the mutation
// itself was applied: when it is true and err is non-nil only the refetch
// failed, the write landed and the cache stays invalidated so the next read
// refetches.
func (c *Client) mutate(ctx context.Context, flag *atomic.Bool, op func() error) (bool, error) {
	flag.Store(true)
	defer flag.Store(false)

	if err := op(); err != nil {
		return false, err
	}
	c.invalidate()
	if _, err := c.Refresh(ctx); err != nil {
		return true, fmt.Errorf("mutation applied but list refetch failed: %w", err)
	}
	return true, nil
}

// AddItem creates an item and refetches the collection. When the returned
// item is non-nil the create landed, even if err reports a failed refetch.
func (c *Client) AddItem(ctx context.Context, req domain.CreateItemRequest) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	applied, err := c.mutate(ctx, &c.adding, func() error {
		return c.do(ctx, http.MethodPost, "/api/inventory", req, &item)
	})
	if !applied {
		return nil, err
	}
	return &item, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	applied, err := c.mutate(ctx, &c.updating, func() error {
		return c.do(ctx, http.MethodPut, "/api/inventory/"+id, req, &item)
	})
	if !applied {
		return nil, err
	}
	return &item, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	applied, err := c.mutate(ctx, &c.deleting, func() error {
		return c.do(ctx, http.MethodDelete, "/api/inventory/"+id, nil, &item)
	})
	if !applied {
		return nil, err
	}
	return &item, err
}

// UpdateQuantity adjusts a single item's quantity. Negative input is clamped
// to 0 before sending, matching the quantity-adjust buttons in the UI.
func (c *Client) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	if quantity < 0 {
		quantity = 0
	}
	var item domain.InventoryItem
	applied, err := c.mutate(ctx, &c.adjusting, func() error {
		req := domain.UpdateQuantityRequest{Quantity: &quantity}
		return c.do(ctx, http.MethodPatch, "/api/inventory/"+id+"/quantity", req, &item)
	})
	if !applied {
		return nil, err
	}
	return &item, err
}

// Stats derives the dashboard aggregates from the cached collection. Callers
// wanting live numbers should Refresh first.
func (c *Client) Stats() domain.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.ComputeStats(c.items)
}

func (c *Client) IsAdding() bool { return c.adding.Load() }

func (c *Client) IsUpdating() bool { return c.updating.Load() }

func (c *Client) IsDeleting() bool { return c.deleting.Load() }

func (c *Client) IsAdjusting() bool { return c.adjusting.Load() }
