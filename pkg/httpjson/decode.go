package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// Decode reads exactly one JSON object from r's body into dst and validates
// it. Unknown fields and trailing data are rejected.
func Decode(r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return ErrUnsupportedMediaType
		}
	}
	if r.Body == nil {
		return ErrBadRequest.WithMessage("Request body is required.")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return ErrRequestEntityTooLarge
		case errors.Is(err, io.EOF):
			return ErrBadRequest.WithMessage("Request body is required.")
		default:
			return ErrBadRequest.WithMessage("Request body is not valid JSON.")
		}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrBadRequest.WithMessage("Request body must contain a single JSON object.")
	}

	return Validate(dst)
}
