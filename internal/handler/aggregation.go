package handler

import (
	"net/http"

	"finhub/internal/aggregation"
	"finhub/internal/analytics"
	"finhub/pkg/logger"
)

// AggregationHandler exposes the aggregation trigger and status endpoints.
type AggregationHandler struct {
	service *aggregation.Service
	engine  *analytics.Engine
	logger  logger.Logger
}

func NewAggregationHandler(service *aggregation.Service, engine *analytics.Engine, log logger.Logger) *AggregationHandler {
	return &AggregationHandler{
		service: service,
		engine:  engine,
		logger:  log,
	}
}

// Run triggers an aggregation pass across all configured sources. The run
// happens inline; the response carries its result.
func (h *AggregationHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Aggregate(r.Context())
	if err != nil {
		h.logger.Error("Aggregation run failed", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Aggregation failed")
		return
	}

	// New rows may have landed; drop the cached summaries.
	h.engine.Invalidate(r.Context())

	respondJSON(h.logger, w, http.StatusAccepted, result)
}

// Status returns the result of the most recent aggregation run.
func (h *AggregationHandler) Status(w http.ResponseWriter, r *http.Request) {
	result := h.service.LastRun()
	if result == nil {
		respondError(h.logger, w, http.StatusNotFound, "No aggregation run recorded")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}
