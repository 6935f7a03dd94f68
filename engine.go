package reqcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/copystructure"
)

// Engine turns raw request data into a validated schema instance.
//
// Validation happens in two phases. Raw values are first decoded into a fresh
// copy of the schema prototype, coercing strings to the declared field types
// (int, float, bool, uuid.UUID, time.Time and any other
// encoding.TextUnmarshaler). The populated struct is then checked against its
// `validate` struct tags. Failures from either phase are reported as field
// errors; they never escape as panics.
//
// An Engine is stateless across calls: validating the same raw input against
// the same schema always produces the same result. A single Engine is safe
// for concurrent use by any number of requests.
type Engine struct {
	validate        *validator.Validate
	disallowUnknown bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDisallowUnknownFields makes the Engine report raw keys that have no
// matching schema field as field errors instead of ignoring them.
func WithDisallowUnknownFields() EngineOption {
	return func(e *Engine) { e.disallowUnknown = true }
}

// NewEngine builds an Engine backed by a validator instance that resolves
// field names from json tags, falling back to the lowercased Go field name.
func NewEngine(opts ...EngineOption) *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	e := &Engine{validate: v}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultEngine serves bindings that were not given an explicit Engine.
// It is configured once and never mutated afterwards.
var defaultEngine = NewEngine()

// Validate decodes raw into a deep copy of prototype and runs struct
// validation on the result. The prototype's field values act as defaults:
// keys absent from raw keep the prototype's value. On success the populated
// copy is returned; on failure a ValidationError attributed to component
// carries one entry per failing field.
func (e *Engine) Validate(component Component, raw map[string]any, prototype any) (any, *ValidationError) {
	target, err := copystructure.Copy(prototype)
	if err != nil {
		// Prototypes are plain data structs; a copy failure is a
		// programming error in the schema definition.
		panic(fmt.Sprintf("reqcheck: cannot copy %s schema prototype: %v", component, err))
	}

	if err := e.decode(raw, target); err != nil {
		return nil, newValidationError(component, decodeFieldErrors(err))
	}

	if err := e.validate.Struct(target); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			// InvalidValidationError means the schema itself is not a
			// struct; surface loudly, this is an integration bug.
			panic(fmt.Sprintf("reqcheck: invalid %s schema: %v", component, err))
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Message: messageForTag(fe),
			})
		}
		return nil, newValidationError(component, fields)
	}

	return target, nil
}

func (e *Engine) decode(raw map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		TagName:     "json",
		ErrorUnused: e.disallowUnknown,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			singleValueToSliceHook,
			mapstructure.TextUnmarshallerHookFunc(),
			stringToNumberHook,
			floatToIntHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// singleValueToSliceHook wraps a lone string in a one-element slice when the
// target field is a slice. Query and form extraction collapses single-valued
// keys to plain strings, so repeated-value fields must accept both shapes.
func singleValueToSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	if to.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	return []any{data}, nil
}

// stringToNumberHook coerces numeric and boolean strings into the declared
// field kind using strconv. JSON bodies are decoded with json.Number, so
// body numbers take this path as well.
func stringToNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	var s string
	switch v := data.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	default:
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a valid integer")
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a valid non-negative integer")
		}
		return n, nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a valid number")
		}
		return f, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("must be a valid boolean")
		}
		return b, nil
	}
	return data, nil
}

// floatToIntHook rejects fractional floats destined for integer fields.
// Without it the decoder would silently truncate 3.7 to 3.
func floatToIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f := reflect.ValueOf(data).Float()
		if f != float64(int64(f)) {
			return nil, fmt.Errorf("must be an integer")
		}
		return int64(f), nil
	}
	return data, nil
}

// decodeFieldErrors converts a mapstructure decode failure into field errors.
// The decoder joins one DecodeError per failing field; the unused-key check
// instead emits a single leaf naming every unmatched key.
func decodeFieldErrors(err error) []FieldError {
	var fields []FieldError
	for _, leaf := range flattenErrors(err) {
		var derr *mapstructure.DecodeError
		if !errors.As(leaf, &derr) {
			fields = append(fields, FieldError{Message: "could not decode request data"})
			continue
		}

		msg := derr.Unwrap().Error()
		if idx := strings.Index(msg, "has invalid keys:"); idx >= 0 {
			prefix := ""
			if name := derr.Name(); name != "" {
				prefix = name + "."
			}
			keys := strings.TrimSpace(msg[idx+len("has invalid keys:"):])
			for _, key := range strings.Split(keys, ", ") {
				fields = append(fields, FieldError{Field: prefix + key, Message: "unknown field"})
			}
			continue
		}

		fields = append(fields, FieldError{Field: derr.Name(), Message: msg})
	}
	return fields
}

// flattenErrors expands an errors.Join tree into its leaves.
func flattenErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var leaves []error
		for _, e := range joined.Unwrap() {
			leaves = append(leaves, flattenErrors(e)...)
		}
		return leaves
	}
	return []error{err}
}

// fieldPath renders a validator error's location in dot/bracket notation
// relative to the schema root, e.g. "address.street" or "tags[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return strings.ToLower(fe.Field())
}

// messageForTag maps validator tags to client-facing messages.
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "uuid", "uuid4":
		return "must be a valid UUID"

	case "e164":
		return "must be a valid phone number with country code"

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed validation: %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
