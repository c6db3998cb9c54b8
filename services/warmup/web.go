package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/rocketshoes/lib/mycontext"
	"github.com/MarcGrol/rocketshoes/lib/myerrors"
	"github.com/MarcGrol/rocketshoes/lib/myhttp"
	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

const probeKey = "warmup"

type webService struct {
	logger  mylog.Logger
	storage mykvstore.Storage
	catalog catalog.Catalog
}

// NewService answers the platform warmup request by touching cart storage and the catalog,
// so the first shopper does not pay for opening connections.
func NewService(storage mykvstore.Storage, catalog catalog.Catalog) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		storage: storage,
		catalog: catalog,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.storage.GetItem(c, probeKey)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(fmt.Errorf("cart storage: %s", err)))
			return
		}

		products, err := s.catalog.ListProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewUnavailableError(fmt.Errorf("catalog: %s", err)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully processed warmup request (%d products in catalog)", len(products)),
		})
	}
}
