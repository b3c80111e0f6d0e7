package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/domain/category"
	"fintrack/internal/shared/middleware"
)

type CategoryHandler struct {
	categories category.Repository
}

func NewCategoryHandler(categories category.Repository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// HandleList returns the user's categories.
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := h.categories.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing categories for user %d: %v", userID, err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

// HandleCreate creates a category for the user.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	c, err := h.categories.Create(r.Context(), category.CreateParams{UserID: userID, Name: req.Name})
	if err != nil {
		log.Printf("Error creating category for user %d: %v", userID, err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// HandleGet returns one category owned by the user.
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCategory(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// HandleUpdate renames a category.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCategory(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	updated, err := h.categories.Rename(r.Context(), c.ID, req.Name)
	if err != nil {
		log.Printf("Error renaming category %d: %v", c.ID, err)
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// HandleDelete removes a category and, through cascade, its transactions
// and budgets.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.ownedCategory(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), c.ID); err != nil {
		log.Printf("Error deleting category %d: %v", c.ID, err)
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedCategory resolves {id} and enforces ownership. Writes the error
// response and returns ok=false when the request cannot proceed.
func (h *CategoryHandler) ownedCategory(w http.ResponseWriter, r *http.Request) (*category.Category, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return nil, false
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("Error getting category %d: %v", id, err)
		http.Error(w, "Failed to get category", http.StatusInternalServerError)
		return nil, false
	}
	if c == nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return nil, false
	}
	if c.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}

	return c, true
}
