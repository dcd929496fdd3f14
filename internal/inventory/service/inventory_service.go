package service

import (
	"context"
	"errors"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/inventory/repository"
	"github.com/stokku/grocery-inventory/internal/platform/logger"
)

type InventoryService interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	CreateItem(ctx context.Context, req domain.CreateItemRequest) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (*domain.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error)
}

type inventoryServiceImpl struct {
	repo  repository.InventoryRepository
	cache repository.ListCache // nil disables caching
}

// NewInventoryService wires the repository and an optional list cache.
// Pass a nil cache to read the store directly on every request.
func NewInventoryService(repo repository.InventoryRepository, cache repository.ListCache) InventoryService {
	return &inventoryServiceImpl{repo: repo, cache: cache}
}

// cachedList serves a collection query through the cache when one is
// configured. Cache faults fall through to the store and are only logged;
// the store remains the source of truth.
//
// On a miss the fill is pinned to the generation read BEFORE the store
// query. A mutation racing this read bumps the generation, so the fill
// lands under a dead key instead of re-caching a pre-mutation snapshot.
func (s *inventoryServiceImpl) cachedList(ctx context.Context, key string,
	query func(context.Context) ([]domain.InventoryItem, error)) ([]domain.InventoryItem, error) {

	fill := false
	var generation int64
	if s.cache != nil {
		items, gen, err := s.cache.GetItems(ctx, key)
		if err == nil {
			return items, nil
		}
		if errors.Is(err, repository.ErrCacheMiss) {
			fill = true
			generation = gen
		} else {
			// Generation unknown; filling could pin stale data, skip it.
			logger.Warn("cachedList: cache read failed for "+key+": %v", err)
		}
	}

	items, err := query(ctx)
	if err != nil {
		return nil, err
	}
	if fill {
		if err := s.cache.SetItems(ctx, key, generation, items); err != nil {
			logger.Warn("cachedList: cache write failed for "+key+": %v", err)
		}
	}
	return items, nil
}

// invalidateLists drops both collection tags after a mutation. Best effort:
// a failed invalidation is logged, the TTL bounds the damage.
func (s *inventoryServiceImpl) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("invalidateLists: cache invalidation failed: %v", err)
	}
}

func (s *inventoryServiceImpl) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.cachedList(ctx, repository.AllItemsKey, s.repo.ListItems)
}

func (s *inventoryServiceImpl) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.cachedList(ctx, repository.LowStockKey, s.repo.ListLowStockItems)
}

func (s *inventoryServiceImpl) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *inventoryServiceImpl) CreateItem(ctx context.Context, req domain.CreateItemRequest) (*domain.InventoryItem, error) {
	item, vErr := domain.ValidateDraft(req)
	if vErr != nil {
		return nil, vErr
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		logger.Error("Svc.CreateItem: repo error", err)
		return nil, err
	}
	s.invalidateLists(ctx)
	return item, nil
}

func (s *inventoryServiceImpl) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (*domain.InventoryItem, error) {
	current, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, vErr := domain.ApplyUpdate(*current, req)
	if vErr != nil {
		return nil, vErr
	}
	if err := s.repo.UpdateItem(ctx, merged); err != nil {
		logger.Error("Svc.UpdateItem: repo error", err)
		return nil, err
	}
	s.invalidateLists(ctx)
	return merged, nil
}

func (s *inventoryServiceImpl) UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) (*domain.InventoryItem, error) {
	quantity, vErr := domain.ValidateQuantity(req)
	if vErr != nil {
		return nil, vErr
	}
	item, err := s.repo.UpdateItemQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return item, nil
}

func (s *inventoryServiceImpl) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := s.repo.DeleteItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return item, nil
}
