package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/domain/transaction"
	"fintrack/internal/shared/middleware"
)

type TransactionHandler struct {
	svc *transaction.Service
}

func NewTransactionHandler(svc *transaction.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type CreateTransactionRequest struct {
	CategoryID      int64   `json:"categoryId"`
	Amount          float64 `json:"amount"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	Notes           *string `json:"notes,omitempty"`
	TransactionDate string  `json:"transactionDate"`
}

type UpdateTransactionRequest struct {
	CategoryID      *int64   `json:"categoryId,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Type            *string  `json:"type,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	TransactionDate *string  `json:"transactionDate,omitempty"`
}

type TransactionListResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Total        int64                      `json:"total"`
}

// HandleList returns the user's transactions, newest first, with the total
// row count for pagination.
func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	transactions, err := h.svc.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	total, err := h.svc.Count(r.Context(), userID)
	if err != nil {
		log.Printf("Error counting transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TransactionListResponse{Transactions: transactions, Total: total})
}

// HandleCreate records a new transaction. The amount sign is normalized
// against the type server-side.
func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CategoryID == 0 || req.Amount == 0 || req.TransactionDate == "" {
		http.Error(w, "categoryId, amount, and transactionDate are required", http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.TransactionDate)
	if err != nil {
		http.Error(w, "Invalid transactionDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:          userID,
		CategoryID:      req.CategoryID,
		Amount:          req.Amount,
		Type:            req.Type,
		Description:     req.Description,
		Notes:           req.Notes,
		TransactionDate: date,
	})
	if err != nil {
		writeTransactionError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

// HandleGet returns one transaction owned by the user.
func (h *TransactionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		writeTransactionError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tx)
}

// HandleUpdate applies a partial update to a transaction.
func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := transaction.UpdateParams{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.TransactionDate != nil {
		date, err := parseDate(*req.TransactionDate)
		if err != nil {
			http.Error(w, "Invalid transactionDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.TransactionDate = &date
	}

	tx, err := h.svc.Update(r.Context(), id, userID, params)
	if err != nil {
		writeTransactionError(w, userID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tx)
}

// HandleDelete removes a transaction.
func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		writeTransactionError(w, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeTransactionError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, transaction.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Transaction error for user %d: %v", userID, err)
		http.Error(w, "Transaction operation failed", http.StatusInternalServerError)
	}
}

// pathID extracts the authenticated user id and the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (userID, id int64, ok bool) {
	userID, authed := r.Context().Value(middleware.UserIDKey).(int64)
	if !authed {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, 0, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, 0, false
	}

	return userID, id, true
}

// parseDate accepts YYYY-MM-DD or full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
