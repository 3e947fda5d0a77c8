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
)

// CustomerHandler manages the customer CRUD endpoints and the nested
// account/transaction listings.
type CustomerHandler struct {
	customers    *store.CustomerStore
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	validator    *validator.Validator
	logger       logger.Logger
}

func NewCustomerHandler(customers *store.CustomerStore, accounts *store.AccountStore, transactions *store.TransactionStore, val *validator.Validator, log logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers:    customers,
		accounts:     accounts,
		transactions: transactions,
		validator:    val,
		logger:       log,
	}
}

// CreateCustomerRequest carries the POST/PUT payload. An explicit ID is
// allowed so records can be created with externally assigned identifiers.
type CreateCustomerRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,e164"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive suspended closed"`
}

func (req *CreateCustomerRequest) toDomain() *domain.Customer {
	c := &domain.Customer{
		ID:     req.ID,
		Name:   validator.Sanitize(req.Name),
		Email:  req.Email,
		Phone:  req.Phone,
		Status: domain.CustomerStatus(req.Status),
	}
	if req.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			c.DateOfBirth = dob
		}
	}
	return c
}

// List returns all customers, optionally narrowed by ?status=.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		customers []*domain.Customer
		err       error
	)

	if status := r.URL.Query().Get("status"); status != "" {
		customers, err = h.customers.FindByStatus(r.Context(), domain.CustomerStatus(status))
	} else {
		customers, err = h.customers.FindAll(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list customers", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.customers.Create(r.Context(), req.toDomain())
	if err != nil {
		if errors.Is(err, errors.ErrCustomerAlreadyExists) {
			respondError(h.logger, w, http.StatusConflict, "Customer already exists")
			return
		}
		h.logger.Error("Failed to create customer", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	customer, err := h.customers.FindByID(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, http.StatusNotFound, "Customer not found")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req CreateCustomerRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		respondError(h.logger, w, http.StatusBadRequest, msg)
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	customer := req.toDomain()
	customer.ID = id

	updated, err := h.customers.Update(r.Context(), customer)
	if err != nil {
		if errors.Is(err, errors.ErrCustomerNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Failed to update customer", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, updated)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, errors.ErrCustomerNotFound) {
			respondError(h.logger, w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("Failed to delete customer", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts returns the customer's accounts.
func (h *CustomerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.customers.FindByID(r.Context(), id); err != nil {
		respondError(h.logger, w, http.StatusNotFound, "Customer not found")
		return
	}

	accounts, err := h.accounts.FindByCustomerID(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list accounts", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"customer_id": id,
		"accounts":    accounts,
		"count":       len(accounts),
	})
}

// ListTransactions returns the customer's transactions.
func (h *CustomerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.customers.FindByID(r.Context(), id); err != nil {
		respondError(h.logger, w, http.StatusNotFound, "Customer not found")
		return
	}

	txs, err := h.transactions.FindByCustomerID(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list transactions", map[string]interface{}{"error": err.Error()})
		respondError(h.logger, w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"customer_id":  id,
		"transactions": txs,
		"count":        len(txs),
	})
}
