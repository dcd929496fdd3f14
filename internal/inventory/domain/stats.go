package domain

// Stats are the aggregates the web client shows above the item list. They
// are recomputed from the live collection on demand and never persisted.
type Stats struct {
	TotalItems    int `json:"totalItems"`
	LowStockItems int `json:"lowStockItems"`
	Categories    int `json:"categories"`
}

// ComputeStats derives the aggregates from an item collection.
// TotalItems is the sum of quantities, not the number of records.
func ComputeStats(items []InventoryItem) Stats {
	stats := Stats{}
	seen := make(map[string]struct{})
	for i := range items {
		stats.TotalItems += items[i].Quantity
		if items[i].IsLowStock() {
			stats.LowStockItems++
		}
		seen[items[i].Category] = struct{}{}
	}
	stats.Categories = len(seen)
	return stats
}
