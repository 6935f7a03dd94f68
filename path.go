package reqcheck

import (
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// ParamType declares the expected type of a single path parameter when no
// explicit path schema struct is bound. Parameter types are declared up front
// at route registration; there is no runtime inspection of handler
// signatures.
type ParamType int

// Supported path parameter types. Parameters not named in a PathTypes
// declaration validate as strings.
const (
	TString ParamType = iota
	TInt
	TFloat
	TUUID
)

func (t ParamType) String() string {
	switch t {
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TUUID:
		return "uuid"
	default:
		return "string"
	}
}

// PathTypes maps path parameter names to their declared types. An empty (but
// non-nil) declaration is valid and validates every captured segment as a
// string.
type PathTypes map[string]ParamType

// coerce validates raw path segments against the declared types and returns
// the coerced values. Errors are reported per parameter, in parameter name
// order so that failure output is deterministic.
func (pt PathTypes) coerce(raw map[string]string) (map[string]any, []FieldError) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	coerced := make(map[string]any, len(raw))
	var fields []FieldError
	for _, name := range names {
		value := raw[name]
		switch pt[name] {
		case TInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				fields = append(fields, FieldError{Field: name, Message: "must be a valid integer"})
				continue
			}
			coerced[name] = n
		case TFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				fields = append(fields, FieldError{Field: name, Message: "must be a valid number"})
				continue
			}
			coerced[name] = f
		case TUUID:
			id, err := uuid.Parse(value)
			if err != nil {
				fields = append(fields, FieldError{Field: name, Message: "must be a valid UUID"})
				continue
			}
			coerced[name] = id
		default:
			coerced[name] = value
		}
	}
	return coerced, fields
}
