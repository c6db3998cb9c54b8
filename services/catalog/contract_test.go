package catalog_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/rocketshoes/lib/myhttpclient"
	"github.com/MarcGrol/rocketshoes/services/catalog"
	"github.com/MarcGrol/rocketshoes/services/catalog/catalogclient"
)

func TestInMemoryCatalog(t *testing.T) {
	CatalogContract{
		catalog: func() catalog.Catalog {
			fake, err := catalog.NewSeededFake(context.TODO())
			require.NoError(t, err)
			return fake
		},
	}.Test(t)
}

func TestRemoteCatalog(t *testing.T) {
	fake, err := catalog.NewSeededFake(context.TODO())
	require.NoError(t, err)

	router := mux.NewRouter()
	catalog.NewService(fake).RegisterEndpoints(context.TODO(), router)
	server := httptest.NewServer(router)
	defer server.Close()

	CatalogContract{
		catalog: func() catalog.Catalog {
			return catalogclient.New(server.URL, myhttpclient.New())
		},
	}.Test(t)
}

// CatalogContract captures what the cart relies on, for both the fake and the real api.
type CatalogContract struct {
	catalog func() catalog.Catalog
}

func (cc CatalogContract) Test(t *testing.T) {
	t.Run("can get the stock of a product", func(t *testing.T) {
		var (
			sut = cc.catalog()
			ctx = context.Background()
		)

		stock, err := sut.GetStock(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, catalog.Stock{ID: 1, Amount: 3}, stock)
	})

	t.Run("can get a product", func(t *testing.T) {
		var (
			sut = cc.catalog()
			ctx = context.Background()
		)

		product, err := sut.GetProduct(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, 2, product.ID)
		assert.Equal(t, "Tênis VR Caminhada Confortável Detalhes Couro Masculino", product.Title)
		assert.Equal(t, 139.9, product.Price)
	})

	t.Run("can list all products ordered by id", func(t *testing.T) {
		var (
			sut = cc.catalog()
			ctx = context.Background()
		)

		products, err := sut.ListProducts(ctx)
		assert.NoError(t, err)
		assert.Len(t, products, 6)
		for i, p := range products {
			assert.Equal(t, i+1, p.ID)
		}
	})

	t.Run("can recognize when a product does not exist", func(t *testing.T) {
		var (
			sut = cc.catalog()
			ctx = context.Background()
		)

		_, err := sut.GetProduct(ctx, 123)
		assert.ErrorIs(t, err, catalog.ErrNotFound)

		_, err = sut.GetStock(ctx, 123)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}
