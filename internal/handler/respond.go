// Package handler provides the HTTP handlers for the aggregation API.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"finhub/pkg/logger"
)

// maxBodyBytes caps individual request bodies at decode time, independent of
// the router-level body limit.
const maxBodyBytes = 1 << 20

func respondJSON(log logger.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("json encode failed", map[string]interface{}{"error": err.Error()})
		_, _ = w.Write([]byte(`{"error":"response encoding failed"}`))
	}
}

func respondError(log logger.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(log, w, status, map[string]string{"error": message})
}

func respondValidationErrors(log logger.Logger, w http.ResponseWriter, errors map[string]string) {
	respondJSON(log, w, http.StatusBadRequest, map[string]interface{}{
		"error":             "Validation failed",
		"validation_errors": errors,
	})
}

// decodeJSON reads a request body into dst with the strict settings every
// endpoint shares: size cap, unknown fields rejected. The returned message
// is ready for a 400 response; an empty message means success.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return "Request body is required"
		}
		return "Invalid request body"
	}
	return ""
}

// parseTimeParam accepts a date-only or RFC3339 query value. Returns nil for
// an empty value and an error for garbage.
func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
