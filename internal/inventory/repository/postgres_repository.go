package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/platform/logger"
)

var ErrItemNotFound = errors.New("item not found")

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error)
	GetItemByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	CreateItem(ctx context.Context, item *domain.InventoryItem) error
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
	UpdateItemQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error)
}

type postgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) InventoryRepository {
	return &postgresInventoryRepository{db: db}
}

const itemColumns = `id, name, quantity, category, min_threshold, created_at, updated_at`

func scanItem(row *sql.Row, item *domain.InventoryItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Category,
		&item.MinThreshold, &item.CreatedAt, &item.UpdatedAt,
	)
}

func (r *postgresInventoryRepository) queryItems(ctx context.Context, query string) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Quantity, &item.Category,
			&item.MinThreshold, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY created_at DESC`
	items, err := r.queryItems(ctx, query)
	if err != nil {
		logger.Error("ListItems: query failed", err)
		return nil, err
	}
	return items, nil
}

// ListLowStockItems evaluates the low-stock predicate over live rows; the
// comparison is inclusive so a quantity exactly at threshold qualifies.
func (r *postgresInventoryRepository) ListLowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE quantity <= min_threshold`
	items, err := r.queryItems(ctx, query)
	if err != nil {
		logger.Error("ListLowStockItems: query failed", err)
		return nil, err
	}
	return items, nil
}

func (r *postgresInventoryRepository) GetItemByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		// Malformed ids address nothing; treat as absent rather than
		// letting the uuid column comparison fail.
		return nil, ErrItemNotFound
	}
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	var item domain.InventoryItem
	err := scanItem(r.db.QueryRowContext(ctx, query, id), &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		logger.Error("GetItemByID: query failed", err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresInventoryRepository) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (id, name, quantity, category, min_threshold, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Quantity, item.Category,
		item.MinThreshold, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		logger.Error("CreateItem: insert failed", err)
		return err
	}
	return nil
}

func (r *postgresInventoryRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	if _, err := uuid.Parse(item.ID); err != nil {
		return ErrItemNotFound
	}
	query := `UPDATE inventory_items
              SET name = $2, quantity = $3, category = $4, min_threshold = $5, updated_at = $6
              WHERE id = $1
              RETURNING ` + itemColumns
	item.UpdatedAt = time.Now().UTC()

	err := scanItem(r.db.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Quantity, item.Category,
		item.MinThreshold, item.UpdatedAt,
	), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		logger.Error("UpdateItem: update failed", err)
		return err
	}
	return nil
}

// UpdateItemQuantity touches only the quantity column in a single atomic
// statement so concurrent edits to other fields are not clobbered.
func (r *postgresInventoryRepository) UpdateItemQuantity(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}
	query := `UPDATE inventory_items
              SET quantity = $2, updated_at = $3
              WHERE id = $1
              RETURNING ` + itemColumns

	var item domain.InventoryItem
	err := scanItem(r.db.QueryRowContext(ctx, query, id, quantity, time.Now().UTC()), &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		logger.Error("UpdateItemQuantity: update failed", err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresInventoryRepository) DeleteItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrItemNotFound
	}
	query := `DELETE FROM inventory_items WHERE id = $1 RETURNING ` + itemColumns

	var item domain.InventoryItem
	err := scanItem(r.db.QueryRowContext(ctx, query, id), &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		logger.Error("DeleteItem: delete failed", err)
		return nil, err
	}
	return &item, nil
}
