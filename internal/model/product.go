package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory values accepted by the catalogue.
var ProductCategories = []string{"MEN", "WOMEN", "UNISEX", "SIGNATURE"}

// SizePrice is one purchasable variant of a product.
type SizePrice struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Product represents a fragrance in the catalogue.
type Product struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Images      []string    `json:"images" db:"images"`
	SizePrices  []SizePrice `json:"sizeAndPrices" db:"size_prices"`
	Discount    int         `json:"discount" db:"discount"`
	Ingredients string      `json:"ingredients" db:"ingredients"`
	Description string      `json:"description" db:"description"`
	Tags        []string    `json:"tags" db:"tags"`
	Category    string      `json:"category" db:"category"`
	Stock       int         `json:"stock" db:"stock"`
	IsDeleted   bool        `json:"isDeleted" db:"is_deleted"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// StockLevel is a point-in-time stock reading used to build shortage reports.
// The conditional decrement, not this snapshot, is the source of truth.
type StockLevel struct {
	ProductID uuid.UUID
	Name      string
	Stock     int
}

// StockDelta is one net decrement against a product's stock. Duplicate cart
// lines for the same product are coalesced into a single delta.
type StockDelta struct {
	ProductID uuid.UUID
	Quantity  int
}

// SearchResult is the trimmed projection returned by catalogue search.
type SearchResult struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Images []string  `json:"images"`
}

// ProductUpdate carries the optional admin edits applied to a product.
// Nil fields are left untouched. Stock here is a manual override, not a
// ledger operation.
type ProductUpdate struct {
	Name        *string      `json:"name,omitempty"`
	SizePrices  *[]SizePrice `json:"sizeAndPrices,omitempty"`
	Discount    *int         `json:"discount,omitempty"`
	Ingredients *string      `json:"ingredients,omitempty"`
	Description *string      `json:"description,omitempty"`
	Tags        *[]string    `json:"tags,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Stock       *int         `json:"stock,omitempty"`
}

// ProductsOverview backs the admin products page.
type ProductsOverview struct {
	TotalCount      int       `json:"totalProductsCount"`
	DeletedCount    int       `json:"deletedProductsCount"`
	LowStockCount   int       `json:"lowStockProductsCount"`
	Products        []Product `json:"allProducts"`
	DeletedProducts []Product `json:"deletedProducts"`
}
