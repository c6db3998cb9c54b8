// Package catalogclient talks to the remote stock and product api.
package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/MarcGrol/rocketshoes/lib/myhttpclient"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

const (
	maxConsecutiveFailures = 5
	openStateTimeout       = 30 * time.Second
)

type response struct {
	status int
	body   []byte
}

type client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	breaker *gobreaker.CircuitBreaker[response]
	logger  mylog.Logger
}

func New(baseURL string, sender myhttpclient.HTTPSender) catalog.Catalog {
	logger := mylog.New("catalogclient")
	return &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sender:  sender,
		logger:  logger,
		breaker: gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
			Name:    "catalog",
			Timeout: openStateTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxConsecutiveFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Log(context.Background(), "", mylog.SeverityWarn, "Circuit-breaker %s changed from %s to %s", name, from, to)
			},
		}),
	}
}

func (cl *client) GetStock(c context.Context, productID int) (catalog.Stock, error) {
	stock := catalog.Stock{}
	err := cl.get(c, fmt.Sprintf("/stock/%d", productID), &stock)
	if err != nil {
		return catalog.Stock{}, err
	}
	return stock, nil
}

func (cl *client) GetProduct(c context.Context, productID int) (catalog.Product, error) {
	product := catalog.Product{}
	err := cl.get(c, fmt.Sprintf("/products/%d", productID), &product)
	if err != nil {
		return catalog.Product{}, err
	}
	return product, nil
}

func (cl *client) ListProducts(c context.Context) ([]catalog.Product, error) {
	products := []catalog.Product{}
	err := cl.get(c, "/products", &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *client) get(c context.Context, path string, result any) error {
	url := cl.baseURL + path

	resp, err := cl.breaker.Execute(func() (response, error) {
		status, body, err := cl.sender.Send(c, http.MethodGet, url, nil)
		if err != nil {
			return response{}, err
		}
		if status >= http.StatusInternalServerError {
			return response{}, fmt.Errorf("GET %s returned status %d", url, status)
		}
		return response{status: status, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			cl.logger.Log(c, "", mylog.SeverityWarn, "Skipped GET %s: %s", url, err)
		}
		return fmt.Errorf("%w: %s", catalog.ErrUnavailable, err)
	}

	switch resp.status {
	case http.StatusOK:
		err = json.Unmarshal(resp.body, result)
		if err != nil {
			return fmt.Errorf("error parsing response of GET %s: %s", url, err)
		}
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("GET %s: %w", url, catalog.ErrNotFound)
	default:
		return fmt.Errorf("GET %s returned unexpected status %d", url, resp.status)
	}
}
