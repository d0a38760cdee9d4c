package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBody caps request bodies at 1MB.
const maxRequestBody = 1 << 20

var validate = validator.New()

// Pointer fields tell a missing key apart from an empty string: "required"
// only fails when the key is absent or null.

type createMessageRequest struct {
	Body     *string `json:"body" validate:"required"`
	Username *string `json:"username" validate:"required"`
}

type updateMessageRequest struct {
	Body *string `json:"body" validate:"required"`
}

// decodeRequest parses a JSON object from the request body into dst and
// checks its required keys.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body has trailing data after the JSON object")
	}
	return validate.Struct(dst)
}
