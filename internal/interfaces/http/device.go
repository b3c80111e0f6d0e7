package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"fintrack/internal/domain/user"
	"fintrack/internal/shared/middleware"
)

// DeviceHandler manages the FCM device token used for alert digests.
type DeviceHandler struct {
	users user.Repository
}

func NewDeviceHandler(users user.Repository) *DeviceHandler {
	return &DeviceHandler{users: users}
}

type RegisterDeviceRequest struct {
	Token string `json:"token"`
}

// HandleRegisterDevice stores the caller's FCM device token.
func (h *DeviceHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	if err := h.users.SetDeviceToken(r.Context(), userID, &req.Token); err != nil {
		log.Printf("Error registering device for user %d: %v", userID, err)
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUnregisterDevice clears the caller's FCM device token.
func (h *DeviceHandler) HandleUnregisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.users.SetDeviceToken(r.Context(), userID, nil); err != nil {
		log.Printf("Error unregistering device for user %d: %v", userID, err)
		http.Error(w, "Failed to unregister device", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
