package cart

import (
	"time"

	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/lib/mytime"
	"github.com/MarcGrol/rocketshoes/lib/myuuid"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

type service struct {
	sessions *sessions
	uuider   myuuid.UUIDer
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(storage mykvstore.Storage, catalog catalog.Catalog, nower mytime.Nower, uuider myuuid.UUIDer, idleTimeout time.Duration) *service {
	logger := mylog.New("cart")
	return newService(storage, catalog, NewLogNotifier(logger), nower, uuider, idleTimeout, logger)
}

func newService(storage mykvstore.Storage, catalog catalog.Catalog, notifier Notifier, nower mytime.Nower, uuider myuuid.UUIDer, idleTimeout time.Duration, logger mylog.Logger) *service {
	return &service{
		sessions: newSessions(storage, catalog, notifier, nower, idleTimeout, logger),
		uuider:   uuider,
		logger:   logger,
	}
}
