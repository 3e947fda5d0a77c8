// Package aggregation pulls customer transactions from the configured data
// sources into the transaction store, categorizing on the way in and
// deduplicating by transaction ID.
//
// ==============================================================================
// AGGREGATION SERVICE - internal/aggregation/service.go
// ==============================================================================
package aggregation

import (
	"context"
	"sync"
	"time"

	"finhub/internal/category"
	"finhub/internal/domain"
	"finhub/internal/source"
	"finhub/pkg/errors"
	"finhub/pkg/logger"

	"github.com/google/uuid"
)

// Result summarizes one aggregation run.
type Result struct {
	SourcesProcessed     int       `json:"sources_processed"`
	SourcesSkipped       int       `json:"sources_skipped"`
	SourcesFailed        int       `json:"sources_failed"`
	CustomersSeen        int       `json:"customers_seen"`
	TransactionsInserted int       `json:"transactions_inserted"`
	Duplicates           int       `json:"duplicates"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}

// Service runs aggregation over the configured sources. Runs are serialized
// by an internal mutex so overlapping triggers cannot double-process.
type Service struct {
	sources     []source.DataSource
	txStore     TransactionStore
	categorizer *category.Categorizer
	logger      logger.Logger

	runMu   sync.Mutex
	lastMu  sync.RWMutex
	lastRun *Result
}

func NewService(sources []source.DataSource, txStore TransactionStore, categorizer *category.Categorizer, log logger.Logger) *Service {
	return &Service{
		sources:     sources,
		txStore:     txStore,
		categorizer: categorizer,
		logger:      log,
	}
}

// Aggregate walks the sources in configured order: health-check, list
// customers, pull and categorize each customer's transactions, and insert
// the ones not already stored. A failing source is logged and skipped;
// inserts already made for it stay (no rollback). Context cancellation
// between sources aborts the run.
func (s *Service) Aggregate(ctx context.Context) (*Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	result := &Result{StartedAt: time.Now().UTC()}
	s.logger.Info("Starting aggregation run", map[string]interface{}{
		"sources": len(s.sources),
	})

	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !src.CheckHealth(ctx) {
			s.logger.Warn("Source unhealthy, skipping", map[string]interface{}{
				"source": src.Name(),
			})
			result.SourcesSkipped++
			continue
		}

		if err := s.processSource(ctx, src, result); err != nil {
			s.logger.Error("Source processing failed", map[string]interface{}{
				"source": src.Name(),
				"error":  err.Error(),
			})
			result.SourcesFailed++
			continue
		}
		result.SourcesProcessed++
	}

	result.FinishedAt = time.Now().UTC()
	s.setLastRun(result)

	s.logger.Info("Aggregation run finished", map[string]interface{}{
		"sources_processed":     result.SourcesProcessed,
		"sources_skipped":       result.SourcesSkipped,
		"sources_failed":        result.SourcesFailed,
		"customers_seen":        result.CustomersSeen,
		"transactions_inserted": result.TransactionsInserted,
		"duplicates":            result.Duplicates,
		"duration_ms":           result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	})
	return result, nil
}

func (s *Service) processSource(ctx context.Context, src source.DataSource, result *Result) error {
	customers, err := src.ListCustomers(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list customers")
	}

	for _, customer := range customers {
		result.CustomersSeen++

		txs, err := src.ListTransactions(ctx, customer.ID, nil, nil)
		if err != nil {
			return errors.Wrap(err, "failed to list transactions")
		}

		s.categorizer.CategorizeAll(txs)

		for _, tx := range txs {
			exists, err := s.txStore.Exists(ctx, tx.ID)
			if err != nil {
				return errors.Wrap(err, "failed to check for existing transaction")
			}
			if exists {
				result.Duplicates++
				continue
			}

			if _, err := s.txStore.Create(ctx, tx); err != nil {
				if errors.Is(err, errors.ErrTransactionAlreadyExists) {
					// Lost the race against a concurrent insert; same outcome
					// as the Exists hit above.
					result.Duplicates++
					continue
				}
				return errors.Wrap(err, "failed to insert transaction")
			}
			result.TransactionsInserted++
		}
	}
	return nil
}

// LastRun returns a copy of the most recent completed run, or nil when no
// run has finished yet.
func (s *Service) LastRun() *Result {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()

	if s.lastRun == nil {
		return nil
	}
	cp := *s.lastRun
	return &cp
}

func (s *Service) setLastRun(r *Result) {
	s.lastMu.Lock()
	s.lastRun = r
	s.lastMu.Unlock()
}

// Sources returns the configured sources in aggregation order.
func (s *Service) Sources() []source.DataSource {
	return s.sources
}

// RunEvery re-runs Aggregate on a fixed interval until the context is
// cancelled. An interval of zero or less disables scheduling entirely.
// Intended to be launched as a goroutine from main.
func (s *Service) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Aggregation runner started", map[string]interface{}{
		"interval": interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Aggregation runner stopped", map[string]interface{}{})
			return
		case <-ticker.C:
			if _, err := s.Aggregate(ctx); err != nil {
				s.logger.Error("Scheduled aggregation failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// TransactionStore is the slice of the transaction store the aggregator
// needs: dedup lookup and insert.
type TransactionStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}
