package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if items := args.Get(0); items != nil {
		return items.([]domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if items := args.Get(0); items != nil {
		return items.([]domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) CreateItem(ctx context.Context, req domain.CreateItemRequest) (*domain.InventoryItem, error) {
	args := m.Called(ctx, req)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id, req)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id, req)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if item := args.Get(0); item != nil {
		return item.(*domain.InventoryItem), args.Error(1)
	}
	return nil, args.Error(1)
}
