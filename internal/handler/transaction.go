package handler

import (
	"context"
	"net/http"
	"time"

	"finhub/internal/analytics"
	"finhub/internal/category"
	"finhub/internal/domain"
	"finhub/internal/store"
	"finhub/pkg/errors"
	"finhub/pkg/logger"
	"finhub/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// TransactionHandler manages the transaction CRUD endpoints, the summary
// view, and the dry-run categorization endpoint.
type TransactionHandler struct {
	transactions *store.TransactionStore
	categorizer  *category.Categorizer
	engine       *analytics.Engine
	validator    *validator.Validator
	logger       logger.Logger
}

func NewTransactionHandler(transactions *store.TransactionStore, cat *category.Categorizer, engine *analytics.Engine, val *validator.Validator, log logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		categorizer:  cat,
		engine:       engine,
		validator:    val,
		logger:       log,
	}
}

// CreateTransactionRequest carries the POST/PUT payload. Amount must be
// non-zero: negative for debits, positive for credits. Omitted fields get
// defaults (currency USD, status completed, type inferred from the amount
// sign, date now).
type CreateTransactionRequest struct {
	ID              string          `json:"id" validate:"omitempty,uuid"`
	CustomerID      string          `json:"customer_id" validate:"required,max=64"`
	AccountID       string          `json:"account_id" validate:"required,max=64"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Currency        string          `json:"currency" validate:"omitempty,currency"`
	TransactionDate string          `json:"transaction_date"`
	Description     string          `json:"description" validate:"required,max=500"`
	MerchantName    string          `json:"merchant_name" validate:"omitempty,max=200"`
	Type            string          `json:"type" validate:"omitempty,oneof=debit credit transfer fee interest dividend refund"`
	Category        string          `json:"category" validate:"omitempty,oneof=food transportation entertainment shopping bills healthcare education travel investment income transfer fee insurance charity other unknown"`
	Status          string          `json:"status" validate:"omitempty,oneof=pending completed failed cancelled processing"`
	ReferenceNumber string          `json:"reference_number" validate:"omitempty,max=64"`
	Source          string          `json:"source" validate:"omitempty,max=32"`
}

func (req *CreateTransactionRequest) toDomain() *domain.Transaction {
	tx := &domain.Transaction{
		CustomerID:      req.CustomerID,
		AccountID:       req.AccountID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Description:     validator.Sanitize(req.Description),
		MerchantName:    validator.Sanitize(req.MerchantName),
		Type:            domain.TransactionType(req.Type),
		Category:        domain.Category(req.Category),
		Status:          domain.TransactionStatus(req.Status),
		ReferenceNumber: req.ReferenceNumber,
		Source:          req.Source,
	}
	if req.ID != "" {
		if id, err := uuid.Parse(req.ID); err == nil {
			tx.ID = id
		}
	}
	if req.TransactionDate != "" {
		if when, err := parseTimeParam(req.TransactionDate); err == nil && when != nil {
			tx.TransactionDate = *when
		}
	}

	if tx.Currency == "" {
		tx.Currency = "USD"
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusCompleted
	}
	if tx.Type == "" {
		if tx.Amount.GreaterThan(decimal.Zero) {
			tx.Type = domain.TransactionTypeCredit
		} else {
			tx.Type = domain.TransactionTypeDebit
		}
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now().UTC()
	}
	if tx.Source == "" {
		tx.Source = store.SourceManual
	}
	return tx
}

// txFilters are the query-parameter filters on the transaction list. All
// present filters must match; the date bounds are inclusive.
type txFilters struct {
	customerID string
	accountID  string
	category   string
	source     string
	start      *time.Time
	end        *time.Time
}

// fetch runs the most selective store query the filters allow. The remaining
// filters are applied in memory by narrow.
func (f *txFilters) fetch(ctx context.Context, txStore *store.TransactionStore) ([]*domain.Transaction, error) {
	switch {
	case f.accountID != "":
		return txStore.FindByAccountID(ctx, f.accountID)
	case f.customerID != "":
		return txStore.FindByCustomerID(ctx, f.customerID)
	case f.category != "":
		return txStore.FindByCategory(ctx, domain.Category(f.category))
	case f.source != "":
		return txStore.FindBySource(ctx, f.source)
	case f.start != nil || f.end != nil:
		return txStore.FindByDateRange(ctx, f.start, f.end)
	default:
		return txStore.FindAll(ctx)
	}
}

func (f *txFilters) narrow(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.customerID != "" && tx.CustomerID != f.customerID {
			continue
		}
		if f.accountID != "" && tx.AccountID != f.accountID {
			continue
		}
		if f.category != "" && tx.Category != domain.Category(f.category) {
			continue
		}
		if f.source != "" && tx.Source != f.source {
			continue
		}
		if f.start != nil && tx.TransactionDate.Before(*f.start) {
			continue
		}
		if f.end != nil && tx.TransactionDate.After(*f.end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// List returns transactions matching the query-parameter filters
// (customerId, accountId, category, source, start, end). Filters combine
// with AND.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseTimeParam(q.Get("start"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD or RFC 3339)")
		return
	}
	end, err := parseTimeParam(q.Get("end"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD or RFC 3339)")
		return
	}

	filters := txFilters{
		customerID: q.Get("customerId"),
		accountID:  q.Get("accountId"),
		category:   q.Get("category"),
		source:     q.Get("source"),
		start:      start,
		end:        end,
	}

	txs, err := filters.fetch(r.Context(), h.transactions)
	if err != nil {
		h.logger.Error("Failed to list transactions", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	txs = filters.narrow(txs)

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}
	if req.TransactionDate != "" {
		if _, err := parseTimeParam(req.TransactionDate); err != nil {
			respondValidationErrors(h.logger, w, map[string]string{
				"TransactionDate": "Must be YYYY-MM-DD or RFC 3339",
			})
			return
		}
	}

	created, err := h.transactions.Create(r.Context(), req.toDomain())
	if err != nil {
		if errors.Is(err, errors.ErrTransactionAlreadyExists) {
			respondError(h.logger, w, http.StatusConflict, "Transaction already exists")
			return
		}
		h.logger.Error("Failed to create transaction", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	tx, err := h.transactions.FindByID(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, http.StatusNotFound, "Transaction not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, tx)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req CreateTransactionRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	tx := req.toDomain()
	tx.ID = id

	updated, err := h.transactions.Update(r.Context(), tx)
	if err != nil {
		if errors.Is(err, errors.ErrTransactionNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.Error("Failed to update transaction", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.transactions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, errors.ErrTransactionNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.Error("Failed to delete transaction", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary returns the per-category and per-source rollups.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	categories, err := h.engine.CategorySummary(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute category summary", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	sources, err := h.engine.SourceSummary(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute source summary", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	total, err := h.transactions.Count(r.Context())
	if err != nil {
		h.logger.Error("Failed to count transactions", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"total_transactions": total,
		"categories":         categories,
		"sources":            sources,
	})
}

// CategorizeRequest carries the dry-run categorization payload. At least one
// of description and merchant_name must be present.
type CategorizeRequest struct {
	Description  string          `json:"description" validate:"required_without=MerchantName,max=500"`
	MerchantName string          `json:"merchant_name" validate:"required_without=Description,max=200"`
	Amount       decimal.Decimal `json:"amount"`
}

// Categorize runs the rule engine over the submitted text without storing
// anything.
func (h *TransactionHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req CategorizeRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	result := h.categorizer.Categorize(&domain.Transaction{
		Description:  req.Description,
		MerchantName: req.MerchantName,
		Amount:       req.Amount,
	})

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"category":      result,
		"description":   req.Description,
		"merchant_name": req.MerchantName,
		"amount":        req.Amount,
	})
}
