package domain

import "strings"

// ValidationError carries a summary message plus the itemized field errors
// that go into the response envelope.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(fieldErrors []string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed: " + strings.Join(fieldErrors, ", "),
		Errors:  fieldErrors,
	}
}

// ValidateDraft checks a create request and, on success, returns the item to
// persist with name and category trimmed. Validation happens here, at the
// service boundary, so the invariants hold regardless of the backing store.
func ValidateDraft(req CreateItemRequest) (*InventoryItem, *ValidationError) {
	var fieldErrors []string

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, "Item name is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		fieldErrors = append(fieldErrors, "Category is required")
	}
	if req.Quantity == nil {
		fieldErrors = append(fieldErrors, "Quantity is required")
	} else if *req.Quantity < 0 {
		fieldErrors = append(fieldErrors, "Quantity cannot be negative")
	}
	if req.MinThreshold == nil {
		fieldErrors = append(fieldErrors, "Minimum threshold is required")
	} else if *req.MinThreshold < 0 {
		fieldErrors = append(fieldErrors, "Minimum threshold cannot be negative")
	}

	if len(fieldErrors) > 0 {
		return nil, newValidationError(fieldErrors)
	}

	return &InventoryItem{
		Name:         name,
		Quantity:     *req.Quantity,
		Category:     category,
		MinThreshold: *req.MinThreshold,
	}, nil
}

// ApplyUpdate merges a partial update onto a copy of the current record and
// re-validates the result. The stored record is never mutated on failure.
func ApplyUpdate(current InventoryItem, req UpdateItemRequest) (*InventoryItem, *ValidationError) {
	merged := current
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		merged.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		merged.Quantity = *req.Quantity
	}
	if req.MinThreshold != nil {
		merged.MinThreshold = *req.MinThreshold
	}

	var fieldErrors []string
	if merged.Name == "" {
		fieldErrors = append(fieldErrors, "Item name is required")
	}
	if merged.Category == "" {
		fieldErrors = append(fieldErrors, "Category is required")
	}
	if merged.Quantity < 0 {
		fieldErrors = append(fieldErrors, "Quantity cannot be negative")
	}
	if merged.MinThreshold < 0 {
		fieldErrors = append(fieldErrors, "Minimum threshold cannot be negative")
	}
	if len(fieldErrors) > 0 {
		return nil, newValidationError(fieldErrors)
	}
	return &merged, nil
}

// ValidateQuantity checks the quantity-only update.
func ValidateQuantity(req UpdateQuantityRequest) (int, *ValidationError) {
	if req.Quantity == nil {
		return 0, newValidationError([]string{"Quantity is required"})
	}
	if *req.Quantity < 0 {
		return 0, newValidationError([]string{"Quantity cannot be negative"})
	}
	return *req.Quantity, nil
}
