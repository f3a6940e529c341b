package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hongminglow/simula-invest-be/internal/apperror"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. An empty body leaves dst at its
// zero value so that field-level validation reports what is missing.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.New(apperror.BadRequest, "Invalid JSON payload", err)
	}
	return nil
}
