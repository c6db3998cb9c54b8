package cart_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/lib/mystore"
	"github.com/MarcGrol/rocketshoes/services/cart"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

type recordingNotifier struct {
	notices []cart.Notice
}

func (n *recordingNotifier) Notify(c context.Context, cartUID string, notice cart.Notice) {
	n.notices = append(n.notices, notice)
}

type cartTestContext struct {
	ctx      context.Context
	catalog  *catalog.Fake
	storage  mykvstore.Storage
	notifier *recordingNotifier
	initial  []cart.Product
	store    *cart.Store
}

func (tc *cartTestContext) reset() error {
	tc.ctx = context.TODO()
	tc.catalog = catalog.NewFake(tc.ctx)
	entityStore, _, err := mystore.NewInMemoryStore[mykvstore.StorageItem](tc.ctx)
	if err != nil {
		return err
	}
	tc.storage = mykvstore.NewEntityStorage(entityStore)
	tc.notifier = &recordingNotifier{}
	tc.initial = []cart.Product{}
	tc.store = nil
	return nil
}

// cart lazily restores the store so that the given steps can fill storage first.
func (tc *cartTestContext) cart() (*cart.Store, error) {
	if tc.store != nil {
		return tc.store, nil
	}
	asJSON, err := json.Marshal(tc.initial)
	if err != nil {
		return nil, err
	}
	err = tc.storage.SetItem(tc.ctx, cart.StorageKey, string(asJSON))
	if err != nil {
		return nil, err
	}
	tc.store, err = cart.New(tc.ctx, "feature", tc.storage, tc.catalog, tc.notifier, mylog.New("cart"))
	return tc.store, err
}

func (tc *cartTestContext) theCatalogHasProductWithPriceAndStock(productID int, price float64, stock int) error {
	return tc.catalog.PutProduct(tc.ctx, catalog.Product{
		ID:    productID,
		Title: fmt.Sprintf("Tênis %d", productID),
		Price: price,
		Image: fmt.Sprintf("tenis%d.jpg", productID),
	}, stock)
}

func (tc *cartTestContext) anEmptyCart() error {
	tc.initial = []cart.Product{}
	return nil
}

func (tc *cartTestContext) theCartContainsProductWithAmount(productID, amount int) error {
	product, err := tc.catalog.GetProduct(tc.ctx, productID)
	if err != nil {
		return err
	}
	tc.initial = append(tc.initial, cart.Product{
		ID:     product.ID,
		Title:  product.Title,
		Price:  product.Price,
		Image:  product.Image,
		Amount: amount,
	})
	return nil
}

func (tc *cartTestContext) theStockOfProductDropsTo(productID, amount int) error {
	return tc.catalog.PutStock(tc.ctx, catalog.Stock{ID: productID, Amount: amount})
}

func (tc *cartTestContext) iAddProduct(productID int) error {
	store, err := tc.cart()
	if err != nil {
		return err
	}
	_ = store.AddProduct(tc.ctx, productID)
	return nil
}

func (tc *cartTestContext) iRemoveProduct(productID int) error {
	store, err := tc.cart()
	if err != nil {
		return err
	}
	_ = store.RemoveProduct(tc.ctx, productID)
	return nil
}

func (tc *cartTestContext) iUpdateProductToAmount(productID, amount int) error {
	store, err := tc.cart()
	if err != nil {
		return err
	}
	_ = store.UpdateProductAmount(tc.ctx, cart.UpdateProductAmount{ProductID: productID, Amount: amount})
	return nil
}

func (tc *cartTestContext) theCartHasProducts(count int) error {
	if len(tc.store.Cart()) != count {
		return fmt.Errorf("expected %d products, got %d", count, len(tc.store.Cart()))
	}
	return nil
}

func (tc *cartTestContext) theCartHoldsProductWithAmount(productID, amount int) error {
	for _, p := range tc.store.Cart() {
		if p.ID == productID {
			if p.Amount != amount {
				return fmt.Errorf("expected amount %d of product %d, got %d", amount, productID, p.Amount)
			}
			return nil
		}
	}
	return fmt.Errorf("product %d not in cart", productID)
}

func (tc *cartTestContext) theNoticeIsShown(notice string) error {
	for _, n := range tc.notifier.notices {
		if string(n) == notice {
			return nil
		}
	}
	return fmt.Errorf("expected notice %q, got %v", notice, tc.notifier.notices)
}

func (tc *cartTestContext) noNoticeIsShown() error {
	if len(tc.notifier.notices) > 0 {
		return fmt.Errorf("expected no notices, got %v", tc.notifier.notices)
	}
	return nil
}

func (tc *cartTestContext) storageMatchesTheCart() error {
	value, found, err := tc.storage.GetItem(tc.ctx, cart.StorageKey)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("cart not persisted")
	}
	persisted := []cart.Product{}
	err = json.Unmarshal([]byte(value), &persisted)
	if err != nil {
		return err
	}
	expected, err := json.Marshal(tc.store.Cart())
	if err != nil {
		return err
	}
	actual, err := json.Marshal(persisted)
	if err != nil {
		return err
	}
	if string(expected) != string(actual) {
		return fmt.Errorf("storage %s differs from cart %s", actual, expected)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	// Given steps
	ctx.Step(`^the catalog has product (\d+) with price ([\d.]+) and stock (\d+)$`, tc.theCatalogHasProductWithPriceAndStock)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the cart contains product (\d+) with amount (\d+)$`, tc.theCartContainsProductWithAmount)
	ctx.Step(`^the stock of product (\d+) drops to (\d+)$`, tc.theStockOfProductDropsTo)

	// When steps
	ctx.Step(`^I add product (\d+)$`, tc.iAddProduct)
	ctx.Step(`^I remove product (\d+)$`, tc.iRemoveProduct)
	ctx.Step(`^I update product (\d+) to amount (-?\d+)$`, tc.iUpdateProductToAmount)

	// Then steps
	ctx.Step(`^the cart has (\d+) products?$`, tc.theCartHasProducts)
	ctx.Step(`^the cart holds product (\d+) with amount (\d+)$`, tc.theCartHoldsProductWithAmount)
	ctx.Step(`^the notice "([^"]*)" is shown$`, tc.theNoticeIsShown)
	ctx.Step(`^no notice is shown$`, tc.noNoticeIsShown)
	ctx.Step(`^storage matches the cart$`, tc.storageMatchesTheCart)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
