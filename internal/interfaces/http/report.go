package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/report"
	"fintrack/internal/shared/middleware"
)

type ReportHandler struct {
	svc *report.Service
}

func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// HandleCustom returns a report over an optional [startDate, endDate] window.
func (h *ReportHandler) HandleCustom(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, ok := reportWindow(w, r)
	if !ok {
		return
	}

	rep, err := h.svc.Generate(r.Context(), userID, start, end)
	if err != nil {
		log.Printf("Error generating report for user %d: %v", userID, err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// HandleWeekly returns the last-7-days report.
func (h *ReportHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rep, err := h.svc.Weekly(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error generating weekly report for user %d: %v", userID, err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// HandleMonthly returns the last-30-days report.
func (h *ReportHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rep, err := h.svc.Monthly(r.Context(), userID, time.Now())
	if err != nil {
		log.Printf("Error generating monthly report for user %d: %v", userID, err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// HandlePDF renders a report for an optional window as a downloadable PDF.
func (h *ReportHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, ok := reportWindow(w, r)
	if !ok {
		return
	}

	rep, err := h.svc.Generate(r.Context(), userID, start, end)
	if err != nil {
		log.Printf("Error generating report for user %d: %v", userID, err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	pdf, err := report.RenderPDF(rep, now)
	if err != nil {
		log.Printf("Error rendering report PDF for user %d: %v", userID, err)
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("financial_report_%s.pdf", now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

// reportWindow parses optional startDate/endDate query parameters and
// rejects inverted ranges.
func reportWindow(w http.ResponseWriter, r *http.Request) (start, end *time.Time, ok bool) {
	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			http.Error(w, "Invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return nil, nil, false
		}
		start = &t
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			http.Error(w, "Invalid endDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return nil, nil, false
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		http.Error(w, "startDate must not be after endDate", http.StatusBadRequest)
		return nil, nil, false
	}
	return start, end, true
}
