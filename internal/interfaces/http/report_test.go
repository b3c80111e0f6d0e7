package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/report"
)

func newReportHandler(reader *MockReader) *ReportHandler {
	return NewReportHandler(report.NewService(reader))
}

func TestHandleCustomReport(t *testing.T) {
	var gotStart, gotEnd *time.Time
	reader := &MockReader{
		EntriesInRangeFunc: func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
			gotStart, gotEnd = start, end
			return []ledger.Entry{
				{ID: 1, Category: "Salary", Amount: 2000, Type: ledger.TypeIncome, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: 2, Category: "Food", Amount: -400, Type: ledger.TypeExpense, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	h := newReportHandler(reader)

	req := authedRequest(t, http.MethodGet, "/api/reports/custom?startDate=2024-03-01&endDate=2024-03-31", nil)
	rec := httptest.NewRecorder()
	h.HandleCustom(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotStart == nil || gotEnd == nil {
		t.Fatal("expected both window bounds to be passed through")
	}

	var rep report.Report
	decodeJSON(t, rec, &rep)
	if rep.TotalIncome != 2000 || rep.TotalExpenses != 400 || rep.NetBalance != 1600 {
		t.Errorf("unexpected totals: %+v", rep)
	}
}

func TestHandleCustomReport_InvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"Inverted", "/api/reports/custom?startDate=2024-03-31&endDate=2024-03-01"},
		{"BadFormat", "/api/reports/custom?startDate=03-2024-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newReportHandler(&MockReader{})

			req := authedRequest(t, http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.HandleCustom(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleWeeklyReport_Window(t *testing.T) {
	var gotStart, gotEnd *time.Time
	reader := &MockReader{
		EntriesInRangeFunc: func(ctx context.Context, userID int64, start, end *time.Time) ([]ledger.Entry, error) {
			gotStart, gotEnd = start, end
			return []ledger.Entry{}, nil
		},
	}
	h := newReportHandler(reader)

	req := authedRequest(t, http.MethodGet, "/api/reports/weekly", nil)
	rec := httptest.NewRecorder()
	h.HandleWeekly(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotStart == nil || gotEnd == nil {
		t.Fatal("expected a bounded window")
	}
	if days := gotEnd.Sub(*gotStart).Hours() / 24; days != 7 {
		t.Errorf("expected a 7-day window, got %v days", days)
	}
}

func TestHandleReportPDF(t *testing.T) {
	h := newReportHandler(&MockReader{})

	req := authedRequest(t, http.MethodGet, "/api/reports/generate/pdf", nil)
	rec := httptest.NewRecorder()
	h.HandlePDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "financial_report_") {
		t.Errorf("expected attachment filename, got %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected response body to be a PDF document")
	}
}
