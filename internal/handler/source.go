package handler

import (
	"net/http"

	"finhub/internal/source"
	"finhub/pkg/logger"

	"github.com/gorilla/mux"
)

// SourceHandler exposes the configured bank data sources: listing them with
// a live health probe and previewing their data without storing it.
type SourceHandler struct {
	sources []source.DataSource
	logger  logger.Logger
}

func NewSourceHandler(sources []source.DataSource, log logger.Logger) *SourceHandler {
	return &SourceHandler{
		sources: sources,
		logger:  log,
	}
}

// List returns every configured source with a health probe taken now.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	type sourceStatus struct {
		Name    string `json:"name"`
		Healthy bool   `json:"healthy"`
	}

	statuses := make([]sourceStatus, 0, len(h.sources))
	for _, src := range h.sources {
		statuses = append(statuses, sourceStatus{
			Name:    src.Name(),
			Healthy: src.CheckHealth(r.Context()),
		})
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"sources": statuses,
		"count":   len(statuses),
	})
}

// Customers returns the customers a source exposes, straight from the
// source.
func (h *SourceHandler) Customers(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	src, ok := source.Find(h.sources, name)
	if !ok {
		respondError(h.logger, w, http.StatusNotFound, "Data source not found")
		return
	}

	customers, err := src.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list source customers", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
		respondError(h.logger, w, http.StatusBadGateway, "Data source request failed")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"source":    name,
		"customers": customers,
		"count":     len(customers),
	})
}

// Preview returns one source customer's accounts and transactions without
// touching the stores. Optional start/end query parameters bound the
// transaction window.
func (h *SourceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	customerID := vars["customerId"]

	src, ok := source.Find(h.sources, name)
	if !ok {
		respondError(h.logger, w, http.StatusNotFound, "Data source not found")
		return
	}

	start, err := parseTimeParam(r.URL.Query().Get("start"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD or RFC 3339)")
		return
	}
	end, err := parseTimeParam(r.URL.Query().Get("end"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD or RFC 3339)")
		return
	}

	customers, err := src.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list source customers", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
		respondError(h.logger, w, http.StatusBadGateway, "Data source request failed")
		return
	}
	known := false
	for _, c := range customers {
		if c.ID == customerID {
			known = true
			break
		}
	}
	if !known {
		respondError(h.logger, w, http.StatusNotFound, "Customer not found in source")
		return
	}

	accounts, err := src.ListAccounts(r.Context(), customerID)
	if err != nil {
		h.logger.Error("Failed to list source accounts", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
		respondError(h.logger, w, http.StatusBadGateway, "Data source request failed")
		return
	}

	txs, err := src.ListTransactions(r.Context(), customerID, start, end)
	if err != nil {
		h.logger.Error("Failed to list source transactions", map[string]interface{}{
			"source": name,
			"error":  err.Error(),
		})
		respondError(h.logger, w, http.StatusBadGateway, "Data source request failed")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"source":       name,
		"customer_id":  customerID,
		"accounts":     accounts,
		"transactions": txs,
		"count":        len(txs),
	})
}
