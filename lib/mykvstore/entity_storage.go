package mykvstore

import (
	"context"
	"fmt"

	"github.com/MarcGrol/rocketshoes/lib/mystore"
)

// StorageItem is the entity persisted per key.
type StorageItem struct {
	Key   string
	Value string `datastore:",noindex"`
}

type entityStorage struct {
	store mystore.Store[StorageItem]
}

func newEntityStorage(c context.Context) (Storage, func(), error) {
	store, cleanup, err := mystore.New[StorageItem](c)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating item store: %s", err)
	}
	return NewEntityStorage(store), cleanup, nil
}

func NewEntityStorage(store mystore.Store[StorageItem]) Storage {
	return &entityStorage{
		store: store,
	}
}

func (s *entityStorage) GetItem(c context.Context, key string) (string, bool, error) {
	item, found, err := s.store.Get(c, key)
	if err != nil {
		return "", false, fmt.Errorf("error getting item %s: %w", key, err)
	}
	if !found {
		return "", false, nil
	}
	return item.Value, true, nil
}

func (s *entityStorage) SetItem(c context.Context, key string, value string) error {
	err := s.store.Put(c, key, StorageItem{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("error setting item %s: %w", key, err)
	}
	return nil
}

func (s *entityStorage) RemoveItem(c context.Context, key string) error {
	err := s.store.Delete(c, key)
	if err != nil {
		return fmt.Errorf("error removing item %s: %w", key, err)
	}
	return nil
}
