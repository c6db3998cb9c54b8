package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MarcGrol/rocketshoes/lib/mykvstore"
	"github.com/MarcGrol/rocketshoes/lib/mylog"
	"github.com/MarcGrol/rocketshoes/lib/mytime"
	"github.com/MarcGrol/rocketshoes/services/catalog"
)

const DefaultIdleTimeout = 30 * time.Minute

type session struct {
	store    *Store
	lastUsed time.Time
}

// sessions keeps one Store per cart in memory. Each cart gets its own key space on the
// shared storage, so an evicted cart is restored on next use.
type sessions struct {
	sync.Mutex
	carts       map[string]*session
	loads       singleflight.Group
	storage     mykvstore.Storage
	catalog     catalog.Catalog
	notifier    Notifier
	nower       mytime.Nower
	idleTimeout time.Duration
	logger      mylog.Logger
}

func newSessions(storage mykvstore.Storage, catalog catalog.Catalog, notifier Notifier, nower mytime.Nower, idleTimeout time.Duration, logger mylog.Logger) *sessions {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &sessions{
		carts:       map[string]*session{},
		storage:     storage,
		catalog:     catalog,
		notifier:    notifier,
		nower:       nower,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

func (s *sessions) get(c context.Context, cartUID string) (*Store, error) {
	now := s.nower.Now()

	s.Lock()
	s.evictIdle(c, now)
	existing, found := s.carts[cartUID]
	if found {
		existing.lastUsed = now
	}
	s.Unlock()

	if found {
		return existing.store, nil
	}

	// shared by every caller waiting for this cart, not only the one that started it
	loadCtx := context.WithoutCancel(c)

	result, err, _ := s.loads.Do(cartUID, func() (any, error) {
		store, err := New(loadCtx, cartUID, mykvstore.WithPrefix(s.storage, cartUID), s.catalog, s.notifier, s.logger)
		if err != nil {
			return nil, err
		}

		s.Lock()
		defer s.Unlock()

		// another load may have completed between our lookup and this one
		existing, found := s.carts[cartUID]
		if found {
			existing.lastUsed = now
			return existing.store, nil
		}
		s.carts[cartUID] = &session{
			store:    store,
			lastUsed: now,
		}
		s.logger.Log(loadCtx, cartUID, mylog.SeverityDebug, "Loaded cart %s", cartUID)

		return store, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading cart %s: %w", cartUID, err)
	}

	return result.(*Store), nil
}

func (s *sessions) size() int {
	s.Lock()
	defer s.Unlock()

	return len(s.carts)
}

// evictIdle must be called with the lock held.
func (s *sessions) evictIdle(c context.Context, now time.Time) {
	for cartUID, sess := range s.carts {
		if now.Sub(sess.lastUsed) > s.idleTimeout {
			delete(s.carts, cartUID)
			s.logger.Log(c, cartUID, mylog.SeverityDebug, "Evicted idle cart %s", cartUID)
		}
	}
}
