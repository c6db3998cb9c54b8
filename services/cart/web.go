package cart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/rocketshoes/lib/mycontext"
	"github.com/MarcGrol/rocketshoes/lib/myerrors"
	"github.com/MarcGrol/rocketshoes/lib/myhttp"
)

type updateAmountForm struct {
	Amount int `form:"amount"`
}

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart", s.createCart()).Methods("POST")
	router.HandleFunc("/api/cart/{cartUID}", s.getCart()).Methods("GET")
	router.HandleFunc("/api/cart/{cartUID}/product/{productID}", s.addProduct()).Methods("POST")
	router.HandleFunc("/api/cart/{cartUID}/product/{productID}", s.removeProduct()).Methods("DELETE")
	router.HandleFunc("/api/cart/{cartUID}/product/{productID}", s.updateProductAmount()).Methods("PUT")
}

func (s *service) createCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		cartUID := s.uuider.Create()

		store, err := s.sessions.get(c, cartUID)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("%s/api/cart/%s", myhttp.HostnameWithScheme(r), cartUID))
		writer.Write(c, w, http.StatusCreated, store.Summary())
	}
}

func (s *service) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		store, err := s.sessions.get(c, mux.Vars(r)["cartUID"])
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, store.Summary())
	}
}

func (s *service) addProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		store, productID, err := s.storeAndProduct(c, r)
		if err != nil {
			writer.WriteError(c, w, 3, err)
			return
		}

		summary, err := store.mutate(func() error {
			return store.addProduct(c, productID)
		})
		if err != nil {
			writer.WriteError(c, w, 4, err)
			return
		}

		writer.Write(c, w, http.StatusOK, summary)
	}
}

func (s *service) removeProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		store, productID, err := s.storeAndProduct(c, r)
		if err != nil {
			writer.WriteError(c, w, 5, err)
			return
		}

		summary, err := store.mutate(func() error {
			return store.removeProduct(c, productID)
		})
		if err != nil {
			writer.WriteError(c, w, 6, err)
			return
		}

		writer.Write(c, w, http.StatusOK, summary)
	}
}

func (s *service) updateProductAmount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			writer.WriteError(c, w, 7, myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err)))
			return
		}

		form := updateAmountForm{}
		err = formcodec.NewDecoder().Decode(&form, r.Form)
		if err != nil {
			writer.WriteError(c, w, 8, myerrors.NewInvalidInputError(fmt.Errorf("error decoding amount: %s", err)))
			return
		}

		store, productID, err := s.storeAndProduct(c, r)
		if err != nil {
			writer.WriteError(c, w, 9, err)
			return
		}

		summary, err := store.mutate(func() error {
			return store.updateProductAmount(c, UpdateProductAmount{
				ProductID: productID,
				Amount:    form.Amount,
			})
		})
		if err != nil {
			writer.WriteError(c, w, 10, err)
			return
		}

		writer.Write(c, w, http.StatusOK, summary)
	}
}

func (s *service) storeAndProduct(c context.Context, r *http.Request) (*Store, int, error) {
	productID, err := strconv.Atoi(mux.Vars(r)["productID"])
	if err != nil {
		return nil, 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid product id: %s", err))
	}

	store, err := s.sessions.get(c, mux.Vars(r)["cartUID"])
	if err != nil {
		return nil, 0, err
	}

	return store, productID, nil
}
