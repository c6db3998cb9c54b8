package warmup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

func TestWarmup(t *testing.T) {

	t.Run("Warmup success", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, storage, catalogMock := setup(ctrl)

		// given
		storage.EXPECT().GetItem(gomock.Any(), "warmup").Return("", false, nil)
		catalogMock.EXPECT().ListProducts(gomock.Any()).Return([]catalog.Product{{ID: 1}, {ID: 2}}, nil)

		// when
		response := get(t, router)

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"Message":"Successfully processed warmup request (2 products in catalog)"}`, response.Body.String())
	})

	t.Run("Storage unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, storage, _ := setup(ctrl)

		// given
		storage.EXPECT().GetItem(gomock.Any(), "warmup").Return("", false, fmt.Errorf("connection refused"))

		// when
		response := get(t, router)

		// then
		assert.Equal(t, 503, response.Code)
	})

	t.Run("Catalog unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, storage, catalogMock := setup(ctrl)

		// given
		storage.EXPECT().GetItem(gomock.Any(), "warmup").Return("", false, nil)
		catalogMock.EXPECT().ListProducts(gomock.Any()).Return(nil, catalog.ErrUnavailable)

		// when
		response := get(t, router)

		// then
		assert.Equal(t, 503, response.Code)
	})
}

func setup(ctrl *gomock.Controller) (*mux.Router, *mykvstore.MockStorage, *catalog.MockCatalog) {
	storage := mykvstore.NewMockStorage(ctrl)
	catalogMock := catalog.NewMockCatalog(ctrl)

	router := mux.NewRouter()
	NewService(storage, catalogMock).RegisterEndpoints(context.TODO(), router)

	return router, storage, catalogMock
}

func get(t *testing.T, router *mux.Router) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
