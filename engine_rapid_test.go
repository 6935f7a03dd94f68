package reqcheck

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type rapidSchema struct {
	Name  string  `json:"name" validate:"required"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
	Flag  bool    `json:"flag"`
}

// Validating arbitrary well-formed raw input must round-trip the values
// exactly and be idempotent: a second validation of the same input yields an
// equal result.
func TestEngineValidateProperties(t *testing.T) {
	e := NewEngine()

	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z0-9 ]{1,32}`).Draw(t, "name")
		count := rapid.Int().Draw(t, "count")
		ratio := rapid.Float64().Draw(t, "ratio")
		flag := rapid.Bool().Draw(t, "flag")

		raw := map[string]any{
			"name":  name,
			"count": strconv.Itoa(count),
			"ratio": strconv.FormatFloat(ratio, 'g', -1, 64),
			"flag":  strconv.FormatBool(flag),
		}

		first, verr := e.Validate(ComponentQuery, raw, &rapidSchema{})
		require.Nil(t, verr)

		got := first.(*rapidSchema)
		require.Equal(t, name, got.Name)
		require.Equal(t, count, got.Count)
		require.Equal(t, ratio, got.Ratio)
		require.Equal(t, flag, got.Flag)

		second, verr := e.Validate(ComponentQuery, raw, &rapidSchema{})
		require.Nil(t, verr)
		require.Equal(t, first, second)
	})
}
