package repository

import "time"

// ProductListFilter filters the product list query.
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    string
	Search        string
	ProductType   string
	OnlyAvailable bool
	OnlyFeatured  bool
	WithCategory  bool
}

// OrderListFilter filters the order list query.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      string
	Status      string
	OrderNumber string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CategoryListFilter filters the category list query.
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
}
