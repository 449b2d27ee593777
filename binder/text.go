package binder

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
)

// DefaultMaxTextSize limits plain text bodies.
const DefaultMaxTextSize = 64 << 10

// Text binds a text/plain body (or a body without Content-Type) into the
// string field tagged `body:"text"`.
func Text() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mt := mediaType(r.Header.Get("Content-Type")); mt != "" && mt != "text/plain" {
			return ErrBinderNotApplicable
		}

		rv, err := structValue(v, ErrInvalidForm)
		if err != nil {
			return err
		}

		field, ok := taggedField(rv, "body", "text")
		if !ok {
			return ErrBinderNotApplicable
		}
		if field.Kind() != reflect.String {
			return fmt.Errorf("%w: body field must be a string", ErrInvalidForm)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxTextSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrInvalidForm, err)
		}
		if len(body) > DefaultMaxTextSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrInvalidForm, DefaultMaxTextSize)
		}

		field.SetString(string(body))
		return nil
	}
}

func taggedField(rv reflect.Value, tagName, value string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := range rv.NumField() {
		if !rv.Field(i).CanSet() {
			continue
		}
		if rt.Field(i).Tag.Get(tagName) == value {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}
