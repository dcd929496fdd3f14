package domain

import (
	"time"
)

// InventoryItem is the single persisted entity. Field names in the JSON
// tags are the canonical wire names consumed by the web client.
type InventoryItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	Category     string    `json:"category"`
	MinThreshold int       `json:"minThreshold"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the item sits at or below its reorder level.
// The comparison is inclusive: quantity == minThreshold already counts.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// CreateItemRequest is the draft for a new item. Quantity and MinThreshold
// are pointers so a missing field is distinguishable from an explicit 0.
type CreateItemRequest struct {
	Name         string `json:"name"`
	Quantity     *int   `json:"quantity"`
	Category     string `json:"category"`
	MinThreshold *int   `json:"minThreshold"`
}

// UpdateItemRequest carries a partial update: nil fields are left untouched,
// supplied fields replace the stored value and the merged record is
// re-validated.
type UpdateItemRequest struct {
	Name         *string `json:"name"`
	Quantity     *int    `json:"quantity"`
	Category     *string `json:"category"`
	MinThreshold *int    `json:"minThreshold"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
