package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stokku/grocery-inventory/internal/inventory/api"
	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/inventory/repository"
	"github.com/stokku/grocery-inventory/internal/inventory/service"
)

// fakeRepo is an in-memory stand-in for the Postgres repository so the
// client can be exercised against the real handler and service.
type fakeRepo struct {
	mu    sync.Mutex
	items []domain.InventoryItem
}

func (f *fakeRepo) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Newest-created first.
	out := make([]domain.InventoryItem, 0, len(f.items))
	for i := len(f.items) - 1; i >= 0; i-- {
		out = append(out, f.items[i])
	}
	return out, nil
}

func (f *fakeRepo) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.InventoryItem{}
	for _, item := range f.items {
		if item.IsLowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetItemByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (f *fakeRepo) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeRepo) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == item.ID {
			item.CreatedAt = f.items[i].CreatedAt
			item.UpdatedAt = time.Now().UTC()
			f.items[i] = *item
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (f *fakeRepo) UpdateItemQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Quantity = quantity
			f.items[i].UpdatedAt = time.Now().UTC()
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (f *fakeRepo) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			item := f.items[i]
			f.items = append(f.items[:i], f.items[i+1:]...)
			return &item, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{}
	svc := service.NewInventoryService(repo, nil)
	handler := api.NewInventoryHandler(svc)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

// newTestBackend wires the real handler and service over the fake repository
// and counts list fetches so cache behavior is observable.
func newTestBackend(t *testing.T) (*Client, *atomic.Int64) {
	t.Helper()
	router := newTestRouter(t)

	var listFetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/inventory" {
			listFetches.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL), &listFetches
}

func intPtr(v int) *int { return &v }

func milkDraft() domain.CreateItemRequest {
	return domain.CreateItemRequest{
		Name:         "Milk",
		Quantity:     intPtr(2),
		Category:     "Dairy",
		MinThreshold: intPtr(2),
	}
}

func TestClient_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	created, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := c.GetItem(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, "Dairy", got.Category)
	assert.Equal(t, 2, got.MinThreshold)
}

func TestClient_LowStockLifecycle(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	created, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)

	// quantity 2, threshold 2: at the boundary counts as low stock
	low, err := c.LowStockItems(ctx)
	assert.NoError(t, err)
	assert.Len(t, low, 1)
	assert.Equal(t, created.ID, low[0].ID)

	_, err = c.UpdateQuantity(ctx, created.ID, 5)
	assert.NoError(t, err)
	low, err = c.LowStockItems(ctx)
	assert.NoError(t, err)
	assert.Empty(t, low)

	_, err = c.UpdateQuantity(ctx, created.ID, 0)
	assert.NoError(t, err)
	low, err = c.LowStockItems(ctx)
	assert.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestClient_RefetchOnMutate(t *testing.T) {
	ctx := context.Background()
	c, listFetches := newTestBackend(t)

	items, err := c.Items(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(1), listFetches.Load())

	// Repeated reads are served from the local cache.
	_, err = c.Items(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), listFetches.Load())

	// A mutation invalidates and refetches the full list.
	created, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), listFetches.Load())

	items, err = c.Items(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, int64(2), listFetches.Load())

	_, err = c.DeleteItem(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), listFetches.Load())

	items, err = c.Items(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_NewestCreatedFirst(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	_, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)
	second, err := c.AddItem(ctx, domain.CreateItemRequest{
		Name: "Rice", Quantity: intPtr(10), Category: "Grains", MinThreshold: intPtr(3),
	})
	assert.NoError(t, err)

	items, err := c.Items(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestClient_Stats(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	_, err := c.AddItem(ctx, milkDraft()) // low stock at boundary
	assert.NoError(t, err)
	_, err = c.AddItem(ctx, domain.CreateItemRequest{
		Name: "Cheese", Quantity: intPtr(5), Category: "Dairy", MinThreshold: intPtr(1),
	})
	assert.NoError(t, err)
	_, err = c.AddItem(ctx, domain.CreateItemRequest{
		Name: "Rice", Quantity: intPtr(0), Category: "Grains", MinThreshold: intPtr(3),
	})
	assert.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 7, stats.TotalItems)
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 2, stats.Categories)
}

func TestClient_QuantityClamp(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	created, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)

	// Negative adjustments clamp to zero before the request is sent; the
	// server would otherwise reject them.
	item, err := c.UpdateQuantity(ctx, created.ID, -5)
	assert.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestClient_APIErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	t.Run("Validation failure carries the itemized errors", func(t *testing.T) {
		_, err := c.AddItem(ctx, domain.CreateItemRequest{
			Name: "", Quantity: intPtr(1), Category: "X", MinThreshold: intPtr(0),
		})
		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Errors, "Item name is required")

		// The rejected draft never shows up in the collection.
		items, err := c.Refresh(ctx)
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Absent id reports 404", func(t *testing.T) {
		_, err := c.GetItem(ctx, "nonexistent-id")
		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Item not found", apiErr.Message)
	})

	t.Run("Deleting an absent id reports 404 as well", func(t *testing.T) {
		_, err := c.DeleteItem(ctx, "nonexistent-id")
		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

// A successful write followed by a failed refetch must still hand the
// caller the decoded item; nil-with-error would hide that the write landed.
func TestClient_MutationSurvivesFailedRefetch(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)

	var failList atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failList.Load() && r.Method == http.MethodGet && r.URL.Path == "/api/inventory" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"Internal Server Error","errors":[]}`))
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	c := NewClient(server.URL)

	failList.Store(true)
	created, err := c.AddItem(ctx, milkDraft())
	assert.Error(t, err)
	assert.NotNil(t, created) // the create itself landed
	assert.NotEmpty(t, created.ID)

	// The collection stays invalidated, so once lists recover the next read
	// refetches and sees the item.
	failList.Store(false)
	items, err := c.Items(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	// A rejected mutation still reports nil.
	_, err = c.DeleteItem(ctx, "nonexistent-id")
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClient_UpdatedAtAdvances(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	created, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	updated, err := c.UpdateQuantity(ctx, created.ID, 9)
	assert.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestClient_InFlightFlags(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestBackend(t)

	assert.False(t, c.IsAdding())
	_, err := c.AddItem(ctx, milkDraft())
	assert.NoError(t, err)
	assert.False(t, c.IsAdding())
	assert.False(t, c.IsUpdating())
	assert.False(t, c.IsDeleting())
	assert.False(t, c.IsAdjusting())
}
