package reqcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("records bindings per route", func(t *testing.T) {
		r := NewRegistry()
		r.Validate("POST /pets", Body(new(petSchema)))
		r.Validate("GET /pets/:petId", PathParams(PathTypes{"petId": TInt}), Query(new(petSchema)))

		b, ok := r.Binding("GET /pets/:petId")
		require.True(t, ok)
		assert.Equal(t, []Component{ComponentPath, ComponentQuery}, b.Components())

		_, ok = r.Binding("DELETE /pets")
		assert.False(t, ok)
	})

	t.Run("routes are sorted", func(t *testing.T) {
		r := NewRegistry()
		r.Validate("POST /b", Body(new(petSchema)))
		r.Validate("GET /a", Query(new(petSchema)))

		assert.Equal(t, []string{"GET /a", "POST /b"}, r.Routes())
	})

	t.Run("duplicate route registration panics", func(t *testing.T) {
		r := NewRegistry()
		r.Validate("POST /pets", Body(new(petSchema)))
		assert.Panics(t, func() {
			r.Validate("POST /pets", Body(new(petSchema)))
		})
	})
}

func TestBindingComponents(t *testing.T) {
	b := newBinding(Body(new(petSchema)), Form(new(petSchema)))
	assert.Equal(t, []Component{ComponentBody, ComponentForm}, b.Components())

	empty := newBinding()
	assert.Empty(t, empty.Components())
}
