package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finhub/internal/domain"
	"finhub/internal/store"
	"finhub/pkg/logger"
	"finhub/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// performJSON invokes a handler func directly, optionally with mux path
// variables, and returns the recorder.
func performJSON(t *testing.T, h http.HandlerFunc, method, target string, body interface{}, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	buf := &bytes.Buffer{}
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

// validationErrors pulls the field error map out of a 400 response.
func validationErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body struct {
		Error            string            `json:"error"`
		ValidationErrors map[string]string `json:"validation_errors"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "Validation failed", body.Error)
	return body.ValidationErrors
}

type customerEnv struct {
	customers    *store.CustomerStore
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	handler      *CustomerHandler
}

func newCustomerEnv() *customerEnv {
	customers := store.NewCustomerStore()
	accounts := store.NewAccountStore()
	transactions := store.NewTransactionStore()
	return &customerEnv{
		customers:    customers,
		accounts:     accounts,
		transactions: transactions,
		handler:      NewCustomerHandler(customers, accounts, transactions, validator.New(), logger.NewNop()),
	}
}

func TestCustomerCreate(t *testing.T) {
	env := newCustomerEnv()

	w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"phone": "+14155550101",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Customer
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, domain.CustomerStatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCustomerCreateValidation(t *testing.T) {
	env := newCustomerEnv()

	tests := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{
			name:    "missing email",
			payload: map[string]interface{}{"name": "Ada Lovelace"},
			field:   "Email",
		},
		{
			name:    "bad email",
			payload: map[string]interface{}{"name": "Ada Lovelace", "email": "not-an-email"},
			field:   "Email",
		},
		{
			name:    "bad phone",
			payload: map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com", "phone": "555-0101"},
			field:   "Phone",
		},
		{
			name:    "bad status",
			payload: map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com", "status": "dormant"},
			field:   "Status",
		},
		{
			name:    "bad date of birth",
			payload: map[string]interface{}{"name": "Ada Lovelace", "email": "ada@example.com", "date_of_birth": "10/12/1815"},
			field:   "DateOfBirth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", tt.payload, nil)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, validationErrors(t, w), tt.field)
		})
	}
}

func TestCustomerCreateRejectsBadBodies(t *testing.T) {
	env := newCustomerEnv()

	w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request body is required")

	w = performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", map[string]interface{}{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"nickname": "ada",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestCustomerCreateDuplicate(t *testing.T) {
	env := newCustomerEnv()
	payload := map[string]interface{}{
		"id":    "cust_dup",
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	}

	w := performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, env.handler.Create, http.MethodPost, "/api/v1/customers", payload, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomerListFiltersByStatus(t *testing.T) {
	env := newCustomerEnv()
	ctx := context.Background()

	_, err := env.customers.Create(ctx, &domain.Customer{Name: "Active One", Email: "a1@example.com"})
	require.NoError(t, err)
	_, err = env.customers.Create(ctx, &domain.Customer{Name: "Active Two", Email: "a2@example.com"})
	require.NoError(t, err)
	_, err = env.customers.Create(ctx, &domain.Customer{Name: "Gone", Email: "gone@example.com", Status: domain.CustomerStatusClosed})
	require.NoError(t, err)

	w := performJSON(t, env.handler.List, http.MethodGet, "/api/v1/customers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all struct {
		Customers []*domain.Customer `json:"customers"`
		Count     int                `json:"count"`
	}
	decodeBody(t, w, &all)
	assert.Equal(t, 3, all.Count)

	w = performJSON(t, env.handler.List, http.MethodGet, "/api/v1/customers?status=closed", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var closed struct {
		Customers []*domain.Customer `json:"customers"`
		Count     int                `json:"count"`
	}
	decodeBody(t, w, &closed)
	require.Equal(t, 1, closed.Count)
	assert.Equal(t, "Gone", closed.Customers[0].Name)
}

func TestCustomerGetNotFound(t *testing.T) {
	env := newCustomerEnv()

	w := performJSON(t, env.handler.Get, http.MethodGet, "/api/v1/customers/cust_missing", nil, map[string]string{"id": "cust_missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerUpdate(t *testing.T) {
	env := newCustomerEnv()

	created, err := env.customers.Create(context.Background(), &domain.Customer{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	w := performJSON(t, env.handler.Update, http.MethodPut, "/api/v1/customers/"+created.ID, map[string]interface{}{
		"name":   "Ada King",
		"email":  "ada@example.com",
		"status": "suspended",
	}, map[string]string{"id": created.ID})

	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Customer
	decodeBody(t, w, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, domain.CustomerStatusSuspended, updated.Status)

	w = performJSON(t, env.handler.Update, http.MethodPut, "/api/v1/customers/cust_missing", map[string]interface{}{
		"name":  "Nobody",
		"email": "nobody@example.com",
	}, map[string]string{"id": "cust_missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerDelete(t *testing.T) {
	env := newCustomerEnv()

	created, err := env.customers.Create(context.Background(), &domain.Customer{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	vars := map[string]string{"id": created.ID}

	w := performJSON(t, env.handler.Delete, http.MethodDelete, "/api/v1/customers/"+created.ID, nil, vars)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(t, env.handler.Get, http.MethodGet, "/api/v1/customers/"+created.ID, nil, vars)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(t, env.handler.Delete, http.MethodDelete, "/api/v1/customers/"+created.ID, nil, vars)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerNestedListings(t *testing.T) {
	env := newCustomerEnv()
	ctx := context.Background()

	customer, err := env.customers.Create(ctx, &domain.Customer{Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = env.accounts.Create(ctx, &domain.Account{CustomerID: customer.ID, Type: domain.AccountTypeChecking, Currency: "USD"})
	require.NoError(t, err)
	_, err = env.transactions.Create(ctx, &domain.Transaction{
		CustomerID:  customer.ID,
		AccountID:   "acct_x",
		Amount:      decimal.NewFromFloat(-12.40),
		Description: "Coffee",
	})
	require.NoError(t, err)

	vars := map[string]string{"id": customer.ID}

	w := performJSON(t, env.handler.ListAccounts, http.MethodGet, "/api/v1/customers/"+customer.ID+"/accounts", nil, vars)
	require.Equal(t, http.StatusOK, w.Code)

	var accounts struct {
		Accounts []*domain.Account `json:"accounts"`
		Count    int               `json:"count"`
	}
	decodeBody(t, w, &accounts)
	assert.Equal(t, 1, accounts.Count)

	w = performJSON(t, env.handler.ListTransactions, http.MethodGet, "/api/v1/customers/"+customer.ID+"/transactions", nil, vars)
	require.Equal(t, http.StatusOK, w.Code)

	var txs struct {
		Transactions []*domain.Transaction `json:"transactions"`
		Count        int                   `json:"count"`
	}
	decodeBody(t, w, &txs)
	assert.Equal(t, 1, txs.Count)

	missing := map[string]string{"id": "cust_missing"}
	w = performJSON(t, env.handler.ListAccounts, http.MethodGet, "/api/v1/customers/cust_missing/accounts", nil, missing)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = performJSON(t, env.handler.ListTransactions, http.MethodGet, "/api/v1/customers/cust_missing/transactions", nil, missing)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
