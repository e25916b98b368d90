package mystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type visit struct {
	UID      string
	Products []int64
}

var (
	visit1 = visit{UID: "123", Products: []int64{1, 2}}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	vs, cleanup, err := NewInMemoryStore[visit](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := vs.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = vs.Put(c, visit1.UID, visit1)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		v, found, err := vs.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, visit{UID: "123", Products: []int64{1, 2}}, v)
	})

	t.Run("Delete", func(t *testing.T) {
		err := vs.Delete(c, visit1.UID)
		assert.NoError(t, err)

		_, found, err := vs.Get(c, visit1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete unknown", func(t *testing.T) {
		assert.NoError(t, vs.Delete(c, "unknown"))
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "visit", kindOf[visit]())
	assert.Equal(t, "string", kindOf[string]())
}
