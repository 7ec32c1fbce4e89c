package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verto-labs/verto-inventory/internal/validation"
	"github.com/verto-labs/verto-inventory/pkg/db/models"
	"github.com/verto-labs/verto-inventory/pkg/pagination"
)

// CreateProductRequest is the JSON payload for creating one product. Pointer
// fields distinguish absent from zero-valued inputs.
type CreateProductRequest struct {
	ProductName       *string  `json:"productName"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	StockQuantity     *int     `json:"stockQuantity"`
	LowStockThreshold *int     `json:"lowStockThreshold"`
}

func (r CreateProductRequest) validationInput() validation.ProductInput {
	return validation.ProductInput{
		ProductName:       r.ProductName,
		Description:       r.Description,
		Price:             r.Price,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// UpdateProductRequest is the JSON payload for a partial product update.
type UpdateProductRequest struct {
	ProductName       *string  `json:"productName"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	StockQuantity     *int     `json:"stockQuantity"`
	LowStockThreshold *int     `json:"lowStockThreshold"`
}

func (r UpdateProductRequest) validationInput() validation.ProductInput {
	return validation.ProductInput{
		ProductName:       r.ProductName,
		Description:       r.Description,
		Price:             r.Price,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// StockOperationRequest is the JSON payload for add-stock and remove-stock.
type StockOperationRequest struct {
	ProductID     string  `json:"productId"`
	StockQuantity *int    `json:"stockQuantity"`
	Reason        *string `json:"reason"`
}

// BulkDeleteRequest is the JSON payload for bulk product deletion.
type BulkDeleteRequest struct {
	ProductIDs []string `json:"productIds"`
}

// ProductDTO is the API projection of a product row. The storage identifier
// is exposed as productId.
type ProductDTO struct {
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	IsLowStock        bool            `json:"isLowStock"`
	StockDeficit      int             `json:"stockDeficit"`
	CreatedBy         string          `json:"createdBy,omitempty"`
	UpdatedBy         string          `json:"updatedBy,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ListResult pairs one page of products with its pagination metadata.
type ListResult struct {
	Products   []ProductDTO      `json:"products"`
	Pagination pagination.Result `json:"pagination"`
}

// StockResult is the response of a stock adjustment. The low-stock annotation
// uses the threshold read before the write.
type StockResult struct {
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	PreviousStock     int    `json:"previousStock"`
	NewStock          int    `json:"newStock"`
	UpdatedBy         string `json:"updatedBy"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	IsLowStock        bool   `json:"isLowStock"`
	StockDeficit      int    `json:"stockDeficit"`
}

// BulkDeleteResult reports how many products a bulk delete removed.
type BulkDeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

func toDTO(p models.Product) ProductDTO {
	low := IsLowStock(p.StockQuantity, p.LowStockThreshold)
	return ProductDTO{
		ProductID:         p.ID.String(),
		ProductName:       p.Name,
		Description:       p.Description,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        low,
		StockDeficit:      StockDeficit(p.StockQuantity, p.LowStockThreshold),
		CreatedBy:         p.CreatedBy,
		UpdatedBy:         p.UpdatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toDTOs(rows []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos
}
