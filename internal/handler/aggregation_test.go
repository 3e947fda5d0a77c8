package handler

import (
	"context"
	"net/http"
	"testing"

	"finhub/internal/aggregation"
	"finhub/internal/analytics"
	"finhub/internal/category"
	"finhub/internal/source"
	"finhub/internal/store"
	"finhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationRunAndStatus(t *testing.T) {
	log := logger.NewNop()
	txStore := store.NewTransactionStore()
	svc := aggregation.NewService(
		[]source.DataSource{source.NewFirstNational(7)},
		txStore,
		category.New(),
		log,
	)
	h := NewAggregationHandler(svc, analytics.NewEngine(txStore, nil, log), log)

	// No run yet.
	w := performJSON(t, h.Status, http.MethodGet, "/api/v1/aggregation/status", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(t, h.Run, http.MethodPost, "/api/v1/aggregation/run", nil, nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	var result aggregation.Result
	decodeBody(t, w, &result)
	assert.Equal(t, 1, result.SourcesProcessed)
	assert.Zero(t, result.SourcesFailed)
	assert.Equal(t, 3, result.CustomersSeen)
	assert.Greater(t, result.TransactionsInserted, 0)

	count, err := txStore.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.TransactionsInserted, count)

	w = performJSON(t, h.Status, http.MethodGet, "/api/v1/aggregation/status", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status aggregation.Result
	decodeBody(t, w, &status)
	assert.Equal(t, result.TransactionsInserted, status.TransactionsInserted)
	assert.False(t, status.FinishedAt.IsZero())
}
