package mystore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Shoe struct {
	UID   string
	Title string
	Price float64
}

var (
	shoe = Shoe{UID: "1", Title: "Tênis de Caminhada Leve Confortável", Price: 179.9}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	ps, cleanup, err := NewInMemoryStore[Shoe](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := ps.Get(c, shoe.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = ps.Put(c, shoe.UID, shoe)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		p, found, err := ps.Get(c, shoe.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, shoe, p)
	})

	t.Run("List", func(t *testing.T) {
		all, err := ps.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []Shoe{shoe}, all)
	})

	t.Run("Transaction commits", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			s, found, err := ps.Get(c, shoe.UID)
			assert.NoError(t, err)
			assert.True(t, found)
			s.Price = 199.9
			return ps.Put(c, s.UID, s)
		})
		assert.NoError(t, err)

		p, _, _ := ps.Get(c, shoe.UID)
		assert.Equal(t, 199.9, p.Price)
	})

	t.Run("Transaction returns error", func(t *testing.T) {
		err := ps.RunInTransaction(c, func(c context.Context) error {
			return errors.New("boom")
		})
		assert.EqualError(t, err, "boom")

		// lock must have been released
		_, _, err = ps.Get(c, shoe.UID)
		assert.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		err := ps.Delete(c, shoe.UID)
		assert.NoError(t, err)

		_, found, err := ps.Get(c, shoe.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete absent", func(t *testing.T) {
		assert.NoError(t, ps.Delete(c, "unknown"))
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Shoe", kindOf[Shoe]())
}
