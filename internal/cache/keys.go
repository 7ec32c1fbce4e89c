package cache

import (
	"fmt"
	"time"
)

// TTL windows per key family.
const (
	// DefaultTTL covers single-entity keys and anything without an override.
	DefaultTTL = 300 * time.Second
	// ListingTTL covers general product listing pages.
	ListingTTL = 5 * time.Minute
	// LowStockTTL covers low-stock listing pages, kept shorter because the
	// data drives restocking decisions.
	LowStockTTL = 2 * time.Minute
)

// Namespaces used for pattern invalidation. ProductNamespace matches every
// listing-shaped key, low-stock pages included; ProductKeyPrefix matches only
// single-entity keys because the trailing colon follows the singular form.
const (
	ProductNamespace  = "products:"
	LowStockNamespace = "products:low-stock"
	ProductKeyPrefix  = "product:"
	UserKeyPrefix     = "user:"
)

// ProductListKey names one page of the general product listing. The filter
// fingerprint keeps differently filtered pages from colliding.
func ProductListKey(page, limit int, filters string) string {
	if filters == "" {
		filters = "none"
	}
	return fmt.Sprintf("products:page:%d:limit:%d:filters:%s", page, limit, filters)
}

// LowStockListKey names one page of the low-stock listing.
func LowStockListKey(page, limit int) string {
	return fmt.Sprintf("products:low-stock:page:%d:limit:%d", page, limit)
}

// ProductKey names the single-entity cache entry for a product.
func ProductKey(id string) string {
	return ProductKeyPrefix + id
}

// UserKey names the single-entity cache entry for a user.
func UserKey(id string) string {
	return UserKeyPrefix + id
}
