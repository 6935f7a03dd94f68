package reqcheck

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	e := newTestServer(t)
	e.POST("/pets/:petId", Handle(func(c echo.Context, vr *ValidRequest) error {
		// Explicit argument and ambient lookup refer to the same value.
		assert.Same(t, vr, MustFromContext(c))
		return c.JSON(http.StatusOK, vr.ToMap())
	}, PathParams(PathTypes{"petId": TInt}), Body(new(petSchema))))

	t.Run("passes the validated request explicitly", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/pets/7", `{"name":"rex"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var m map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
		assert.Contains(t, m, "path")
		assert.Contains(t, m, "body")
	})

	t.Run("failure short-circuits before the handler", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/pets/abc", `{"name":"rex"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "path", decodeError(t, rec).Component)
	})
}

func TestHandleBody(t *testing.T) {
	e := newTestServer(t)
	e.POST("/pets", HandleBody(func(c echo.Context, pet *petSchema) error {
		return c.String(http.StatusCreated, pet.Name)
	}))

	t.Run("typed body is passed directly", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/pets", `{"name":"rex"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "rex", rec.Body.String())
	})

	t.Run("invalid body yields 400", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/pets", `{"age":-1}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "body", decodeError(t, rec).Component)
	})
}
