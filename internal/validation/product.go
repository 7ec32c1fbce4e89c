package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxBatchCreate caps how many products one batch request may carry.
	MaxBatchCreate = 50
	// MaxBulkDelete caps how many ids one bulk delete request may carry.
	MaxBulkDelete = 10
	// MaxStockMagnitude bounds a single stock adjustment.
	MaxStockMagnitude = 10000

	maxNameLength        = 100
	maxDescriptionLength = 500
	maxReasonLength      = 200
)

// ProductInput carries the raw fields of a product create or update request.
// Nil pointers mark fields absent from the request body.
type ProductInput struct {
	ProductName       *string
	Description       *string
	Price             *float64
	StockQuantity     *int
	LowStockThreshold *int
}

// CreateProduct validates a single-product creation payload. Name and price
// are required; description, stock quantity and threshold are optional and
// default downstream, but are validated when present.
func CreateProduct(input ProductInput) []string {
	var reasons []string

	reasons = append(reasons, checkRequiredString(input.ProductName, maxNameLength, "Product name")...)
	if input.Description != nil {
		reasons = append(reasons, checkString(*input.Description, maxDescriptionLength, "Description")...)
	}
	if input.Price == nil {
		reasons = append(reasons, "Price must be a number")
	} else {
		reasons = append(reasons, checkMin(*input.Price, 0, "Price")...)
	}
	if input.StockQuantity != nil {
		reasons = append(reasons, checkIntMin(*input.StockQuantity, 0, "Stock quantity")...)
	}
	if input.LowStockThreshold != nil {
		reasons = append(reasons, checkIntMin(*input.LowStockThreshold, 0, "Low stock threshold")...)
	}

	return reasons
}

// ProductsArray validates a batch creation payload: bounds first, then every
// element in order, then cross-element duplicate names reported once each.
func ProductsArray(inputs []ProductInput) []string {
	if len(inputs) == 0 {
		return []string{"Products array cannot be empty"}
	}
	if len(inputs) > MaxBatchCreate {
		return []string{fmt.Sprintf("Cannot create more than %d products at once", MaxBatchCreate)}
	}

	var reasons []string
	for i, input := range inputs {
		for _, reason := range CreateProduct(input) {
			reasons = append(reasons, fmt.Sprintf("Product at index %d: %s", i, reason))
		}
	}

	seen := map[string]int{}
	var order []string
	for _, input := range inputs {
		if input.ProductName == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(*input.ProductName))
		if name == "" {
			continue
		}
		if seen[name] == 1 {
			order = append(order, name)
		}
		seen[name]++
	}
	if len(order) > 0 {
		reasons = append(reasons, fmt.Sprintf("Duplicate product names found in request: %s", strings.Join(order, ", ")))
	}

	return reasons
}

// UpdateProduct validates a partial update payload: each supplied field is
// checked, and at least one mutable field must be present.
func UpdateProduct(input ProductInput) []string {
	var reasons []string
	hasField := false

	if input.ProductName != nil {
		reasons = append(reasons, checkString(*input.ProductName, maxNameLength, "Product name")...)
		hasField = true
	}
	if input.Description != nil {
		reasons = append(reasons, checkString(*input.Description, maxDescriptionLength, "Description")...)
		hasField = true
	}
	if input.Price != nil {
		reasons = append(reasons, checkMin(*input.Price, 0, "Price")...)
		hasField = true
	}
	if input.StockQuantity != nil {
		reasons = append(reasons, checkIntMin(*input.StockQuantity, 0, "Stock quantity")...)
		hasField = true
	}
	if input.LowStockThreshold != nil {
		reasons = append(reasons, checkIntMin(*input.LowStockThreshold, 0, "Low stock threshold")...)
		hasField = true
	}

	if !hasField {
		reasons = append(reasons, "At least one field (productName, description, price, stockQuantity, lowStockThreshold) must be provided to update")
	}

	return reasons
}

// StockOperation validates a stock adjustment payload. The magnitude must sit
// inside [0, MaxStockMagnitude]; the optional reason is length-bounded.
func StockOperation(quantity *int, reason *string) []string {
	var reasons []string

	if quantity == nil {
		reasons = append(reasons, "stockQuantity must be a number")
	} else {
		reasons = append(reasons, checkIntRange(*quantity, 0, MaxStockMagnitude, "stockQuantity")...)
	}
	if reason != nil && len(*reason) > maxReasonLength {
		reasons = append(reasons, fmt.Sprintf("Reason cannot exceed %d characters", maxReasonLength))
	}

	return reasons
}

// ProductID validates a path or body product identifier.
func ProductID(id string) []string {
	if strings.TrimSpace(id) == "" {
		return []string{"productId is required and must be a non-empty string"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return []string{"Invalid product ID"}
	}
	return nil
}

// BulkDelete validates a bulk deletion payload: bounds, per-id shape, and
// duplicate detection with the offending values listed.
func BulkDelete(ids []string) []string {
	if len(ids) == 0 {
		return []string{"Product IDs array cannot be empty"}
	}
	if len(ids) > MaxBulkDelete {
		return []string{fmt.Sprintf("Cannot delete more than %d products at once", MaxBulkDelete)}
	}

	var reasons []string
	for i, id := range ids {
		for _, reason := range ProductID(id) {
			reasons = append(reasons, fmt.Sprintf("Product ID at index %d: %s", i, reason))
		}
	}

	seen := map[string]int{}
	var order []string
	for _, id := range ids {
		if seen[id] == 1 {
			order = append(order, id)
		}
		seen[id]++
	}
	if len(order) > 0 {
		reasons = append(reasons, fmt.Sprintf("Duplicate product IDs found in request: %s", strings.Join(order, ", ")))
	}

	return reasons
}
