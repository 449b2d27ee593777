package binder

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
)

// DefaultMaxMemory is the maximum memory used to parse multipart forms.
const DefaultMaxMemory = 10 << 20

// File binds multipart uploads into []byte fields tagged `file:"name"`.
// A missing upload leaves the field nil.
func File() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mediaType(r.Header.Get("Content-Type")) != "multipart/form-data" {
			return ErrBinderNotApplicable
		}

		rv, err := structValue(v, ErrInvalidForm)
		if err != nil {
			return err
		}

		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() || fieldType.Tag.Get("file") == "" {
				continue
			}

			name, skip := parseFieldTag(fieldType, "file")
			if skip {
				continue
			}
			if fieldType.Type != reflect.TypeOf([]byte(nil)) {
				return fmt.Errorf("%w: field %s must be []byte", ErrInvalidForm, fieldType.Name)
			}

			data, err := readUpload(r, name)
			if err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, fieldType.Name, err)
			}
			field.SetBytes(data)
		}

		return nil
	}
}

func readUpload(r *http.Request, name string) ([]byte, error) {
	f, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, DefaultMaxMemory))
}
