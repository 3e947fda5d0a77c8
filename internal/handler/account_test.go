package handler

import (
	"context"
	"net/http"
	"testing"

	"finhub/internal/domain"
	"finhub/internal/store"
	"finhub/pkg/logger"
	"finhub/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountEnv struct {
	accounts *store.AccountStore
	handler  *AccountHandler
}

func newAccountEnv() *accountEnv {
	accounts := store.NewAccountStore()
	return &accountEnv{
		accounts: accounts,
		handler:  NewAccountHandler(accounts, validator.New(), logger.NewNop()),
	}
}

func TestAccountCreate(t *testing.T) {
	env := newAccountEnv()

	w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/accounts", map[string]interface{}{
		"customer_id": "cust_001",
		"type":        "checking",
		"currency":    "USD",
		"balance":     1250.75,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Account
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "cust_001", created.CustomerID)
	assert.Equal(t, domain.AccountTypeChecking, created.Type)
	assert.Equal(t, domain.AccountStatusActive, created.Status)
	assert.True(t, created.Balance.Equal(decimal.NewFromFloat(1250.75)))
}

func TestAccountCreateValidation(t *testing.T) {
	env := newAccountEnv()

	tests := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{
			name:    "missing customer",
			payload: map[string]interface{}{"type": "checking", "currency": "USD"},
			field:   "CustomerID",
		},
		{
			name:    "bad type",
			payload: map[string]interface{}{"customer_id": "cust_001", "type": "offshore", "currency": "USD"},
			field:   "Type",
		},
		{
			name:    "lowercase currency",
			payload: map[string]interface{}{"customer_id": "cust_001", "type": "checking", "currency": "usd"},
			field:   "Currency",
		},
		{
			name:    "currency too long",
			payload: map[string]interface{}{"customer_id": "cust_001", "type": "checking", "currency": "DOLLARS"},
			field:   "Currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/accounts", tt.payload, nil)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, validationErrors(t, w), tt.field)
		})
	}
}

func TestAccountListFiltersByCustomer(t *testing.T) {
	env := newAccountEnv()
	ctx := context.Background()

	for _, a := range []*domain.Account{
		{CustomerID: "cust_001", Type: domain.AccountTypeChecking, Currency: "USD"},
		{CustomerID: "cust_001", Type: domain.AccountTypeSavings, Currency: "USD"},
		{CustomerID: "cust_002", Type: domain.AccountTypeCredit, Currency: "EUR"},
	} {
		_, err := env.accounts.Create(ctx, a)
		require.NoError(t, err)
	}

	w := performJSON(t, env.handler.List, http.MethodGet, "/api/v1/accounts?customerId=cust_001", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Accounts []*domain.Account `json:"accounts"`
		Count    int               `json:"count"`
	}
	decodeBody(t, w, &body)
	require.Equal(t, 2, body.Count)
	for _, a := range body.Accounts {
		assert.Equal(t, "cust_001", a.CustomerID)
	}
}

func TestAccountUpdateAndDelete(t *testing.T) {
	env := newAccountEnv()

	created, err := env.accounts.Create(context.Background(), &domain.Account{
		CustomerID: "cust_001",
		Type:       domain.AccountTypeChecking,
		Currency:   "USD",
	})
	require.NoError(t, err)

	vars := map[string]string{"id": created.ID}

	w := performJSON(t, env.handler.Update, http.MethodPut, "/api/v1/accounts/"+created.ID, map[string]interface{}{
		"customer_id": "cust_001",
		"type":        "checking",
		"currency":    "USD",
		"status":      "frozen",
		"balance":     0,
	}, vars)
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Account
	decodeBody(t, w, &updated)
	assert.Equal(t, domain.AccountStatusFrozen, updated.Status)

	w = performJSON(t, env.handler.Delete, http.MethodDelete, "/api/v1/accounts/"+created.ID, nil, vars)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(t, env.handler.Get, http.MethodGet, "/api/v1/accounts/"+created.ID, nil, vars)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
