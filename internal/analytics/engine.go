// Package analytics computes summary views over the transaction store:
// per-category and per-source counts and totals. Results are cached in Redis
// for a short window when a cache is configured.
package analytics

import (
	"context"
	"sort"
	"time"

	"finhub/internal/domain"
	"finhub/pkg/cache"
	"finhub/pkg/errors"
	"finhub/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	categorySummaryKey = "summary:category"
	sourceSummaryKey   = "summary:source"
	summaryTTL         = 30 * time.Second
)

// CategorySummary is the rollup for one category.
type CategorySummary struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Average  decimal.Decimal `json:"average"`
}

// SourceSummary is the rollup for one originating data source.
type SourceSummary struct {
	Source string          `json:"source"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// Engine answers summary queries. The cache is optional; a nil cache means
// every call recomputes from the store.
type Engine struct {
	txStore TransactionStore
	cache   *cache.RedisCache
	logger  logger.Logger
}

func NewEngine(txStore TransactionStore, redisCache *cache.RedisCache, log logger.Logger) *Engine {
	return &Engine{
		txStore: txStore,
		cache:   redisCache,
		logger:  log,
	}
}

// CategorySummary rolls up all stored transactions by category, sorted by
// absolute total descending so the biggest spending buckets come first.
func (e *Engine) CategorySummary(ctx context.Context) ([]CategorySummary, error) {
	if e.cache != nil {
		var cached []CategorySummary
		if err := e.cache.Get(ctx, categorySummaryKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn("Summary cache read failed", map[string]interface{}{
				"key":   categorySummaryKey,
				"error": err.Error(),
			})
		}
	}

	txs, err := e.txStore.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transactions")
	}

	type bucket struct {
		count int
		total decimal.Decimal
	}
	buckets := make(map[domain.Category]*bucket)
	for _, tx := range txs {
		b, ok := buckets[tx.Category]
		if !ok {
			b = &bucket{total: decimal.Zero}
			buckets[tx.Category] = b
		}
		b.count++
		b.total = b.total.Add(tx.Amount)
	}

	out := make([]CategorySummary, 0, len(buckets))
	for cat, b := range buckets {
		out = append(out, CategorySummary{
			Category: cat,
			Count:    b.count,
			Total:    b.total,
			Average:  b.total.Div(decimal.NewFromInt(int64(b.count))).Round(2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].Total.Abs().Cmp(out[j].Total.Abs())
		if cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})

	e.store(ctx, categorySummaryKey, out)
	return out, nil
}

// SourceSummary rolls up all stored transactions by originating source,
// sorted by count descending.
func (e *Engine) SourceSummary(ctx context.Context) ([]SourceSummary, error) {
	if e.cache != nil {
		var cached []SourceSummary
		if err := e.cache.Get(ctx, sourceSummaryKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn("Summary cache read failed", map[string]interface{}{
				"key":   sourceSummaryKey,
				"error": err.Error(),
			})
		}
	}

	txs, err := e.txStore.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transactions")
	}

	counts := make(map[string]int)
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		counts[tx.Source]++
		totals[tx.Source] = totals[tx.Source].Add(tx.Amount)
	}

	out := make([]SourceSummary, 0, len(counts))
	for src, n := range counts {
		out = append(out, SourceSummary{Source: src, Count: n, Total: totals[src]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})

	e.store(ctx, sourceSummaryKey, out)
	return out, nil
}

// store caches a computed summary, logging and moving on when Redis is
// unavailable. Summaries are cheap to recompute; the cache is best-effort.
func (e *Engine) store(ctx context.Context, key string, value interface{}) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, value, summaryTTL); err != nil {
		e.logger.Warn("Summary cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached summaries. Called after aggregation runs so
// the next summary reflects the new rows immediately.
func (e *Engine) Invalidate(ctx context.Context) {
	if e.cache == nil {
		return
	}
	for _, key := range []string{categorySummaryKey, sourceSummaryKey} {
		if err := e.cache.Delete(ctx, key); err != nil {
			e.logger.Warn("Summary cache invalidation failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

// TransactionStore is the slice of the transaction store the engine reads.
type TransactionStore interface {
	FindAll(ctx context.Context) ([]*domain.Transaction, error)
}
