package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verto-labs/verto-inventory/pkg/db/models"
)

const defaultLowStockThreshold = 10

// normalizeCreate turns a validated creation payload into a storage row:
// name and description trimmed, absent fields defaulted, negative stock
// clamped to zero.
func normalizeCreate(req CreateProductRequest, actor string) models.Product {
	product := models.Product{
		Name:              strings.TrimSpace(deref(req.ProductName)),
		Description:       strings.TrimSpace(deref(req.Description)),
		StockQuantity:     0,
		LowStockThreshold: defaultLowStockThreshold,
		CreatedBy:         actor,
		UpdatedBy:         actor,
	}

	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = clampNonNegative(*req.StockQuantity)
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = clampNonNegative(*req.LowStockThreshold)
	}

	return product
}

// applyUpdate copies the supplied fields of a validated update payload onto
// an existing row.
func applyUpdate(product *models.Product, req UpdateProductRequest, actor string) {
	if req.ProductName != nil {
		product.Name = strings.TrimSpace(*req.ProductName)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = clampNonNegative(*req.StockQuantity)
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = clampNonNegative(*req.LowStockThreshold)
	}
	product.UpdatedBy = actor
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
