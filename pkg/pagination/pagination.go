package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when the page parameter is missing or not numeric.
	DefaultPage = 1
	// DefaultLimit is used when the limit parameter is missing or not numeric.
	DefaultLimit = 100
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds the normalized offset pagination inputs.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Result is the pagination metadata returned alongside windowed listings.
type Result struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Skip        int  `json:"skip"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Normalize derives effective page/limit/skip from raw query values. Missing
// or non-numeric inputs fall back to the defaults; out-of-range values clamp
// to the nearest bound.
func Normalize(rawPage, rawLimit string) Params {
	page := parseOrDefault(rawPage, DefaultPage)
	limit := parseOrDefault(rawLimit, DefaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// NewResult builds listing metadata for the given window and total row count.
func NewResult(page, limit, totalItems int) Result {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Result{
		Page:        page,
		Limit:       limit,
		Skip:        (page - 1) * limit,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

func parseOrDefault(raw string, fallback int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return value
}
