package product

// IsLowStock reports whether a quantity sits at or below its threshold.
func IsLowStock(stockQuantity, threshold int) bool {
	return stockQuantity <= threshold
}

// StockDeficit returns how far below the threshold the quantity sits, or zero
// when stock is not low.
func StockDeficit(stockQuantity, threshold int) int {
	if !IsLowStock(stockQuantity, threshold) {
		return 0
	}
	return threshold - stockQuantity
}
