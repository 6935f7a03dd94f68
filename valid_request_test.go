package reqcheck

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("fails outside a validated request", func(t *testing.T) {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		vr, err := FromContext(c)
		assert.Nil(t, vr)
		assert.ErrorIs(t, err, ErrNoValidRequest)
	})

	t.Run("must variant panics outside a validated request", func(t *testing.T) {
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		assert.Panics(t, func() { MustFromContext(c) })
	})

	t.Run("undecorated handler on a decorated app has no valid request", func(t *testing.T) {
		e := newTestServer(t)
		e.GET("/plain", func(c echo.Context) error {
			_, err := FromContext(c)
			require.ErrorIs(t, err, ErrNoValidRequest)
			return c.NoContent(http.StatusNoContent)
		})

		rec := doJSON(e, http.MethodGet, "/plain", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestValidRequestToMap(t *testing.T) {
	t.Run("includes only configured components", func(t *testing.T) {
		vr := &ValidRequest{Body: &petSchema{Name: "rex"}}
		m := vr.ToMap()
		assert.Len(t, m, 1)
		assert.Contains(t, m, "body")
	})

	t.Run("empty validated object is distinct from absent", func(t *testing.T) {
		vr := &ValidRequest{Query: &petSchema{}}
		m := vr.ToMap()
		assert.Contains(t, m, "query")
		assert.NotContains(t, m, "body")
	})

	t.Run("marshals as the map form, omitting absent components", func(t *testing.T) {
		vr := &ValidRequest{Body: &petSchema{Name: "rex"}}
		data, err := json.Marshal(vr)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Len(t, m, 1)
		assert.Equal(t, "rex", m["body"].(map[string]any)["name"])
	})
}

func TestTypedAccessors(t *testing.T) {
	vr := &ValidRequest{
		Body: &petSchema{Name: "rex"},
		Path: map[string]any{"petId": 42},
	}

	t.Run("matching type", func(t *testing.T) {
		pet, ok := BodyAs[petSchema](vr)
		require.True(t, ok)
		assert.Equal(t, "rex", pet.Name)
	})

	t.Run("mismatched type", func(t *testing.T) {
		_, ok := BodyAs[nestedSchema](vr)
		assert.False(t, ok)
	})

	t.Run("absent component", func(t *testing.T) {
		_, ok := QueryAs[petSchema](vr)
		assert.False(t, ok)
	})

	t.Run("path params map", func(t *testing.T) {
		params := vr.PathParams()
		require.NotNil(t, params)
		assert.Equal(t, 42, params["petId"])
	})

	t.Run("path params nil for struct schema", func(t *testing.T) {
		structured := &ValidRequest{Path: &petSchema{}}
		assert.Nil(t, structured.PathParams())
	})
}
