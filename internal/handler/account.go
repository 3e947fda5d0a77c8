package handler

import (
	"net/http"
	"time"

	"finhub/internal/domain"
	"finhub/internal/store"
	"finhub/pkg/errors"
	"finhub/pkg/logger"
	"finhub/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// AccountHandler manages the account CRUD endpoints.
type AccountHandler struct {
	accounts  *store.AccountStore
	validator *validator.Validator
	logger    logger.Logger
}

func NewAccountHandler(accounts *store.AccountStore, val *validator.Validator, log logger.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		validator: val,
		logger:    log,
	}
}

// CreateAccountRequest carries the POST/PUT payload. CustomerID is an opaque
// reference; it is not checked against the customer store.
type CreateAccountRequest struct {
	ID               string          `json:"id" validate:"omitempty,max=64"`
	CustomerID       string          `json:"customer_id" validate:"required,max=64"`
	AccountNumber    string          `json:"account_number" validate:"omitempty,max=34"`
	Type             string          `json:"type" validate:"required,oneof=checking savings credit investment loan business"`
	Currency         string          `json:"currency" validate:"required,currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Status           string          `json:"status" validate:"omitempty,oneof=active inactive frozen closed"`
	OpenedDate       string          `json:"opened_date" validate:"omitempty,datetime=2006-01-02"`
}

func (req *CreateAccountRequest) toDomain() *domain.Account {
	a := &domain.Account{
		ID:               req.ID,
		CustomerID:       req.CustomerID,
		AccountNumber:    req.AccountNumber,
		Type:             domain.AccountType(req.Type),
		Currency:         req.Currency,
		Balance:          req.Balance,
		AvailableBalance: req.AvailableBalance,
		Status:           domain.AccountStatus(req.Status),
	}
	if req.OpenedDate != "" {
		if opened, err := time.Parse("2006-01-02", req.OpenedDate); err == nil {
			a.OpenedDate = opened
		}
	}
	return a
}

// List returns all accounts, optionally narrowed by ?customerId=.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []*domain.Account
		err      error
	)

	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		accounts, err = h.accounts.FindByCustomerID(r.Context(), customerID)
	} else {
		accounts, err = h.accounts.FindAll(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list accounts", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.accounts.Create(r.Context(), req.toDomain())
	if err != nil {
		if errors.Is(err, errors.ErrAccountAlreadyExists) {
			respondError(h.logger, w, http.StatusConflict, "Account already exists")
			return
		}
		h.logger.Error("Failed to create account", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	account, err := h.accounts.FindByID(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, http.StatusNotFound, "Account not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, account)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CreateAccountRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	account := req.toDomain()
	account.ID = id

	updated, err := h.accounts.Update(r.Context(), account)
	if err != nil {
		if errors.Is(err, errors.ErrAccountNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("Failed to update account", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, errors.ErrAccountNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("Failed to delete account", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
