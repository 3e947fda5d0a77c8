package analytics

import (
	"context"
	"testing"
	"time"

	"finhub/internal/domain"
	"finhub/internal/store"
	"finhub/pkg/cache"
	"finhub/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedTx(t *testing.T, s *store.TransactionStore, category domain.Category, source string, amount float64) {
	t.Helper()
	_, err := s.Create(context.Background(), &domain.Transaction{
		ID:              uuid.New(),
		CustomerID:      "cust_001",
		AccountID:       "acct_001",
		Amount:          decimal.NewFromFloat(amount),
		Currency:        "USD",
		TransactionDate: time.Now().UTC(),
		Description:     "summary fixture",
		Type:            domain.TransactionTypeDebit,
		Category:        category,
		Status:          domain.TransactionStatusCompleted,
		Source:          source,
	})
	assert.NoError(t, err)
}

func TestCategorySummary(t *testing.T) {
	ctx := context.Background()
	txStore := store.NewTransactionStore()
	seedTx(t, txStore, domain.CategoryFood, "manual", -10.00)
	seedTx(t, txStore, domain.CategoryFood, "manual", -20.00)
	seedTx(t, txStore, domain.CategoryIncome, "manual", 3500.00)
	seedTx(t, txStore, domain.CategoryOther, "manual", -5.00)

	engine := NewEngine(txStore, nil, logger.NewNop())

	got, err := engine.CategorySummary(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	// Sorted by absolute total descending: income 3500, food 30, other 5.
	assert.Equal(t, domain.CategoryIncome, got[0].Category)
	assert.Equal(t, domain.CategoryFood, got[1].Category)
	assert.Equal(t, domain.CategoryOther, got[2].Category)

	assert.Equal(t, 2, got[1].Count)
	assert.True(t, got[1].Total.Equal(decimal.NewFromFloat(-30.00)))
	assert.True(t, got[1].Average.Equal(decimal.NewFromFloat(-15.00)))
	assert.True(t, got[0].Average.Equal(decimal.NewFromFloat(3500.00)))
}

func TestSourceSummary(t *testing.T) {
	ctx := context.Background()
	txStore := store.NewTransactionStore()
	seedTx(t, txStore, domain.CategoryFood, "firstnational", -10.00)
	seedTx(t, txStore, domain.CategoryFood, "firstnational", -15.00)
	seedTx(t, txStore, domain.CategoryFood, "firstnational", -20.00)
	seedTx(t, txStore, domain.CategoryBills, "communitytrust", -80.00)

	engine := NewEngine(txStore, nil, logger.NewNop())

	got, err := engine.SourceSummary(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	assert.Equal(t, "firstnational", got[0].Source)
	assert.Equal(t, 3, got[0].Count)
	assert.True(t, got[0].Total.Equal(decimal.NewFromFloat(-45.00)))

	assert.Equal(t, "communitytrust", got[1].Source)
	assert.Equal(t, 1, got[1].Count)
}

func TestSummariesOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(store.NewTransactionStore(), nil, logger.NewNop())

	cats, err := engine.CategorySummary(ctx)
	assert.NoError(t, err)
	assert.Empty(t, cats)

	srcs, err := engine.SourceSummary(ctx)
	assert.NoError(t, err)
	assert.Empty(t, srcs)
}

func TestCategorySummaryUsesCache(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available")
	}
	defer client.Close()
	redisCache := cache.New(client)

	txStore := store.NewTransactionStore()
	seedTx(t, txStore, domain.CategoryFood, "manual", -10.00)

	engine := NewEngine(txStore, redisCache, logger.NewNop())
	engine.Invalidate(ctx)

	first, err := engine.CategorySummary(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// A new row inside the TTL is invisible until the cache is dropped.
	seedTx(t, txStore, domain.CategoryBills, "manual", -99.00)

	cached, err := engine.CategorySummary(ctx)
	assert.NoError(t, err)
	assert.Len(t, cached, 1)

	engine.Invalidate(ctx)

	fresh, err := engine.CategorySummary(ctx)
	assert.NoError(t, err)
	assert.Len(t, fresh, 2)
}
