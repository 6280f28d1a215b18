package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"folio/internal/config"
)

// maxBodyBytes leaves room for base64-encoded imports
const maxBodyBytes = config.MaxImportBytes*4/3 + 1<<20

// ParseJSON decodes the JSON request body into dest. Bodies above the import
// limit are rejected by http.MaxBytesReader.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// QueryInt returns the integer query parameter key, or def when it is absent
// or malformed
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
