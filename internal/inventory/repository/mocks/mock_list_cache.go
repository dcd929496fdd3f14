package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
)

type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) GetItems(ctx context.Context, key string) ([]domain.InventoryItem, int64, error) {
	args := m.Called(ctx, key)
	var items []domain.InventoryItem
	if v := args.Get(0); v != nil {
		items = v.([]domain.InventoryItem)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockListCache) SetItems(ctx context.Context, key string, generation int64, items []domain.InventoryItem) error {
	args := m.Called(ctx, key, generation, items)
	return args.Error(0)
}

func (m *MockListCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
