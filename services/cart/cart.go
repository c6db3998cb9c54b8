package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MarcGrol/rocketshoes/lib/myerrors"
	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

// Store holds the cart of a single shopper and keeps it in sync with storage.
// Operations on one Store are serialized.
type Store struct {
	sync.Mutex
	cartUID  string
	products []Product
	storage  mykvstore.Storage
	catalog  catalog.Catalog
	notifier Notifier
	logger   mylog.Logger
}

// New restores the cart that was persisted under StorageKey, or starts with an empty one.
func New(c context.Context, cartUID string, storage mykvstore.Storage, catalog catalog.Catalog, notifier Notifier, logger mylog.Logger) (*Store, error) {
	s := &Store{
		cartUID:  cartUID,
		products: []Product{},
		storage:  storage,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}

	stored, found, err := storage.GetItem(c, StorageKey)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error loading cart %s: %s", cartUID, err))
	}
	if !found {
		return s, nil
	}

	products := []Product{}
	err = json.Unmarshal([]byte(stored), &products)
	if err != nil {
		s.logger.Log(c, cartUID, mylog.SeverityWarn, "Ignoring corrupt cart %s: %s", cartUID, err)
		return s, nil
	}
	if products != nil {
		s.products = products
	}

	return s, nil
}

// Cart returns a copy of the products in the cart, in insertion order.
func (s *Store) Cart() []Product {
	s.Lock()
	defer s.Unlock()

	return s.copyProducts()
}

func (s *Store) AddProduct(c context.Context, productID int) error {
	s.Lock()
	defer s.Unlock()

	return s.addProduct(c, productID)
}

func (s *Store) addProduct(c context.Context, productID int) error {
	s.logger.Log(c, s.cartUID, mylog.SeverityInfo, "Add product %d to cart %s", productID, s.cartUID)

	updatedCart := s.copyProducts()
	idx := indexOf(updatedCart, productID)

	stock, err := s.catalog.GetStock(c, productID)
	if err != nil {
		return s.fail(c, NoticeAddFailed, catalogError(productID, err))
	}

	currentAmount := 0
	if idx >= 0 {
		currentAmount = updatedCart[idx].Amount
	}
	amount := currentAmount + 1

	if amount > stock.Amount {
		return s.fail(c, NoticeOutOfStock,
			myerrors.NewConflictError(fmt.Errorf("product %d: requested %d, in stock %d", productID, amount, stock.Amount)))
	}

	if idx >= 0 {
		updatedCart[idx].Amount = amount
	} else {
		product, err := s.catalog.GetProduct(c, productID)
		if err != nil {
			return s.fail(c, NoticeAddFailed, catalogError(productID, err))
		}
		updatedCart = append(updatedCart, Product{
			ID:     productID,
			Title:  product.Title,
			Price:  product.Price,
			Image:  product.Image,
			Amount: 1,
		})
	}

	err = s.setCart(c, updatedCart)
	if err != nil {
		return s.fail(c, NoticeAddFailed, err)
	}

	return nil
}

func (s *Store) RemoveProduct(c context.Context, productID int) error {
	s.Lock()
	defer s.Unlock()

	return s.removeProduct(c, productID)
}

func (s *Store) removeProduct(c context.Context, productID int) error {
	s.logger.Log(c, s.cartUID, mylog.SeverityInfo, "Remove product %d from cart %s", productID, s.cartUID)

	updatedCart := s.copyProducts()
	idx := indexOf(updatedCart, productID)
	if idx < 0 {
		return s.fail(c, NoticeRemoveFailed,
			myerrors.NewNotFoundError(fmt.Errorf("product %d is not in cart", productID)))
	}
	updatedCart = append(updatedCart[:idx], updatedCart[idx+1:]...)

	err := s.setCart(c, updatedCart)
	if err != nil {
		return s.fail(c, NoticeRemoveFailed, err)
	}

	return nil
}

// UpdateProductAmount sets the amount of a product already in the cart.
// Amounts of zero or less are ignored.
func (s *Store) UpdateProductAmount(c context.Context, req UpdateProductAmount) error {
	s.Lock()
	defer s.Unlock()

	return s.updateProductAmount(c, req)
}

func (s *Store) updateProductAmount(c context.Context, req UpdateProductAmount) error {
	if req.Amount <= 0 {
		s.logger.Log(c, s.cartUID, mylog.SeverityDebug, "Ignore amount %d for product %d", req.Amount, req.ProductID)
		return nil
	}

	s.logger.Log(c, s.cartUID, mylog.SeverityInfo, "Update amount of product %d in cart %s to %d", req.ProductID, s.cartUID, req.Amount)

	stock, err := s.catalog.GetStock(c, req.ProductID)
	if err != nil {
		return s.fail(c, NoticeUpdateFailed, catalogError(req.ProductID, err))
	}

	if req.Amount > stock.Amount {
		return s.fail(c, NoticeOutOfStock,
			myerrors.NewConflictError(fmt.Errorf("product %d: requested %d, in stock %d", req.ProductID, req.Amount, stock.Amount)))
	}

	updatedCart := s.copyProducts()
	idx := indexOf(updatedCart, req.ProductID)
	if idx < 0 {
		return s.fail(c, NoticeUpdateFailed,
			myerrors.NewNotFoundError(fmt.Errorf("product %d is not in cart", req.ProductID)))
	}
	updatedCart[idx].Amount = req.Amount

	err = s.setCart(c, updatedCart)
	if err != nil {
		return s.fail(c, NoticeUpdateFailed, err)
	}

	return nil
}

// mutate runs op and summarizes the cart it left behind, without letting other
// operations on this cart interleave.
func (s *Store) mutate(op func() error) (Summary, error) {
	s.Lock()
	defer s.Unlock()

	err := op()
	return Summarize(s.cartUID, s.copyProducts()), err
}

// setCart persists first so that memory never runs ahead of storage.
func (s *Store) setCart(c context.Context, updatedCart []Product) error {
	asJSON, err := json.Marshal(updatedCart)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error marshalling cart %s: %s", s.cartUID, err))
	}

	err = s.storage.SetItem(c, StorageKey, string(asJSON))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error persisting cart %s: %s", s.cartUID, err))
	}

	s.products = updatedCart

	return nil
}

func (s *Store) fail(c context.Context, notice Notice, err error) error {
	s.logger.Log(c, s.cartUID, mylog.SeverityWarn, "Cart %s: %s", s.cartUID, err)
	s.notifier.Notify(c, s.cartUID, notice)

	return &NoticeError{
		Notice: notice,
		Err:    err,
	}
}

func (s *Store) copyProducts() []Product {
	products := make([]Product, len(s.products))
	copy(products, s.products)
	return products
}

func catalogError(productID int, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return myerrors.NewNotFoundError(fmt.Errorf("product %d: %w", productID, err))
	}
	return myerrors.NewUnavailableError(fmt.Errorf("product %d: %w", productID, err))
}
