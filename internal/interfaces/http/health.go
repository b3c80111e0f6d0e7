package http

import (
	"encoding/json"
	"net/http"
)

// HandleHealth reports service liveness.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "fintrack-api",
	})
}
