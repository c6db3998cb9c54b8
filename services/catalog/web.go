package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/rocketshoes/lib/mycontext"
	"github.com/MarcGrol/rocketshoes/lib/myerrors"
	"github.com/MarcGrol/rocketshoes/lib/myhttp"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
)

type service struct {
	catalog Catalog
	logger  mylog.Logger
}

// NewService exposes a catalog with the same http interface as the remote stock api.
func NewService(catalog Catalog) *service {
	return &service{
		catalog: catalog,
		logger:  mylog.New("catalog"),
	}
}

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/products/{productID}", s.getProduct()).Methods("GET")
	router.HandleFunc("/stock/{productID}", s.getStock()).Methods("GET")
}

func (s *service) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		products, err := s.catalog.ListProducts(c)
		if err != nil {
			writer.WriteError(c, w, 1, toHTTPError(err))
			return
		}

		writer.Write(c, w, http.StatusOK, products)
	}
}

func (s *service) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := productIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		product, err := s.catalog.GetProduct(c, productID)
		if err != nil {
			writer.WriteError(c, w, 3, toHTTPError(err))
			return
		}

		writer.Write(c, w, http.StatusOK, product)
	}
}

func (s *service) getStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		productID, err := productIDFromRequest(r)
		if err != nil {
			writer.WriteError(c, w, 4, err)
			return
		}

		stock, err := s.catalog.GetStock(c, productID)
		if err != nil {
			writer.WriteError(c, w, 5, toHTTPError(err))
			return
		}

		writer.Write(c, w, http.StatusOK, stock)
	}
}

func productIDFromRequest(r *http.Request) (int, error) {
	productID, err := strconv.Atoi(mux.Vars(r)["productID"])
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id %q", mux.Vars(r)["productID"])
	}
	return productID, nil
}

func toHTTPError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return myerrors.NewNotFoundError(err)
	}
	return myerrors.NewInternalError(err)
}
