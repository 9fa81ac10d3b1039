package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, e.g. authors[0].fname.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// RegisterStructValidation adds a struct-level rule for the given types.
// Call it from init.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	validate.RegisterStructValidation(fn, types...)
}

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the
// limit installed by RequestSizeLimitMiddleware.
var ErrBodyTooLarge = errors.New("request body too large")

// Messages overrides the default text for a field and validation tag, keyed
// as "field:tag". Slice indexes are written as [], e.g.
// "authors[].fname:required". JSON type mismatches use the tag "type".
type Messages map[string]string

var indexPattern = regexp.MustCompile(`\[\d+\]`)

func (m Messages) lookup(field, tag, fallback string) string {
	if msg, ok := m[indexPattern.ReplaceAllString(field, "[]")+":"+tag]; ok {
		return msg
	}
	return fallback
}

// ValidateStruct checks s against its validate tags and registered struct
// rules and returns one detail per failing field.
func ValidateStruct(s interface{}, msgs Messages) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "body", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		details = append(details, ErrorDetail{
			Field:   field,
			Message: msgs.lookup(field, fe.Tag(), fieldMessage(field, fe)),
		})
	}
	return details
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nonempty":
		return fmt.Sprintf("%s cannot be empty", field)
	case "type":
		return fmt.Sprintf("%s has the wrong type", field)
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		default:
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// DecodeJSON reads a single JSON value from the request body into dst. An
// empty body leaves dst untouched. Malformed input is reported as field
// details; an oversized body yields ErrBodyTooLarge instead.
func DecodeJSON(r *http.Request, dst interface{}, msgs Messages) ([]ErrorDetail, error) {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err == nil {
		var extra json.RawMessage
		if err = dec.Decode(&extra); errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		fallback := fmt.Sprintf("%s must be of type %s", field, jsonType(typeErr.Type))
		return []ErrorDetail{{Field: field, Message: msgs.lookup(field, "type", fallback)}}, nil
	default:
		return []ErrorDetail{{Field: "body", Message: "body must be valid JSON"}}, nil
	}
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "array of " + jsonType(t.Elem())
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}
