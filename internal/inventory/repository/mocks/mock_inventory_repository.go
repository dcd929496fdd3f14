package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if items := args.Get(0); items != nil {
		return items.([]domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if items := args.Get(0); items != nil {
		return items.([]domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) GetItemByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	if item != nil && args.Error(0) == nil {
		item.ID = "mock-item-id"
	}
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItemQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id, quantity)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryRepository) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}
