package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("not found in catalog")
	ErrUnavailable = errors.New("catalog unavailable")
)

type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Stock is the amount of a product that is available for sale.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

//go:generate mockgen -source=api.go -package catalog -destination catalog_mock.go Catalog
type Catalog interface {
	GetStock(c context.Context, productID int) (Stock, error)
	GetProduct(c context.Context, productID int) (Product, error)
	ListProducts(c context.Context) ([]Product, error)
}
