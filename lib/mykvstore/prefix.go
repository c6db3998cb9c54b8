package mykvstore

import "context"

type prefixedStorage struct {
	storage Storage
	prefix  string
}

// WithPrefix gives each scope (a shopper session) its own key space on a shared storage.
func WithPrefix(storage Storage, scope string) Storage {
	return &prefixedStorage{
		storage: storage,
		prefix:  scope + "/",
	}
}

func (s *prefixedStorage) GetItem(c context.Context, key string) (string, bool, error) {
	return s.storage.GetItem(c, s.prefix+key)
}

func (s *prefixedStorage) SetItem(c context.Context, key string, value string) error {
	return s.storage.SetItem(c, s.prefix+key, value)
}

func (s *prefixedStorage) RemoveItem(c context.Context, key string) error {
	return s.storage.RemoveItem(c, s.prefix+key)
}
