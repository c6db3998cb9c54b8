package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/MarcGrol/rocketshoes/lib/mystore"
)

// catalogEntry keeps a product together with its stock, so both change atomically.
type catalogEntry struct {
	Product Product
	Stock   int
}

// Fake is an in-memory catalog used for local development and tests.
type Fake struct {
	entries mystore.Store[catalogEntry]
}

func NewFake(c context.Context) *Fake {
	entries, _, _ := mystore.NewInMemoryStore[catalogEntry](c)
	return &Fake{
		entries: entries,
	}
}

// NewSeededFake returns a fake filled with the default storefront assortment.
func NewSeededFake(c context.Context) (*Fake, error) {
	f := NewFake(c)
	for _, p := range seedProducts {
		err := f.PutProduct(c, p.product, p.stock)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Fake) PutProduct(c context.Context, product Product, stockAmount int) error {
	err := f.entries.Put(c, strconv.Itoa(product.ID), catalogEntry{
		Product: product,
		Stock:   stockAmount,
	})
	if err != nil {
		return fmt.Errorf("error storing product %d: %s", product.ID, err)
	}
	return nil
}

// PutStock changes the stock of a product that is already in the catalog.
func (f *Fake) PutStock(c context.Context, stock Stock) error {
	uid := strconv.Itoa(stock.ID)
	return f.entries.RunInTransaction(c, func(c context.Context) error {
		entry, found, err := f.entries.Get(c, uid)
		if err != nil {
			return fmt.Errorf("error fetching product %d: %s", stock.ID, err)
		}
		if !found {
			return fmt.Errorf("product %d: %w", stock.ID, ErrNotFound)
		}

		entry.Stock = stock.Amount

		err = f.entries.Put(c, uid, entry)
		if err != nil {
			return fmt.Errorf("error storing stock of product %d: %s", stock.ID, err)
		}
		return nil
	})
}

func (f *Fake) GetStock(c context.Context, productID int) (Stock, error) {
	entry, err := f.get(c, productID)
	if err != nil {
		return Stock{}, err
	}
	return Stock{ID: productID, Amount: entry.Stock}, nil
}

func (f *Fake) GetProduct(c context.Context, productID int) (Product, error) {
	entry, err := f.get(c, productID)
	if err != nil {
		return Product{}, err
	}
	return entry.Product, nil
}

func (f *Fake) ListProducts(c context.Context) ([]Product, error) {
	entries, err := f.entries.List(c)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, e.Product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (f *Fake) get(c context.Context, productID int) (catalogEntry, error) {
	entry, found, err := f.entries.Get(c, strconv.Itoa(productID))
	if err != nil {
		return catalogEntry{}, err
	}
	if !found {
		return catalogEntry{}, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return entry, nil
}

const imageBaseURL = "https://rocketseat-cdn.s3-sa-east-1.amazonaws.com/modulo-redux"

var seedProducts = []struct {
	product Product
	stock   int
}{
	{
		product: Product{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: imageBaseURL + "/tenis1.jpg"},
		stock:   3,
	},
	{
		product: Product{ID: 2, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: imageBaseURL + "/tenis2.jpg"},
		stock:   5,
	},
	{
		product: Product{ID: 3, Title: "Tênis Adidas Duramo Lite 2.0", Price: 219.9, Image: imageBaseURL + "/tenis3.jpg"},
		stock:   2,
	},
	{
		product: Product{ID: 4, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: imageBaseURL + "/tenis1.jpg"},
		stock:   1,
	},
	{
		product: Product{ID: 5, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: imageBaseURL + "/tenis2.jpg"},
		stock:   5,
	},
	{
		product: Product{ID: 6, Title: "Tênis Adidas Duramo Lite 2.0", Price: 219.9, Image: imageBaseURL + "/tenis3.jpg"},
		stock:   10,
	},
}
