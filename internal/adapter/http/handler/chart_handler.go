package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tavola/ledger/internal/adapter/http/dto"
	"github.com/tavola/ledger/internal/usecase"
)

// ChartService defines the behavior needed by ChartHandler.
type ChartService interface {
	BuildChartStructure(ctx context.Context, asOf *time.Time, includeZeroBalances bool) (*usecase.ChartStructure, error)
	CalculateTotals(chart *usecase.ChartStructure) usecase.ChartTotals
	ExportCSV(chart *usecase.ChartStructure) ([]byte, error)
}

// ChartHandler handles chart-of-accounts report HTTP requests.
type ChartHandler struct {
	chartUC ChartService
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(chartUC ChartService) *ChartHandler {
	return &ChartHandler{chartUC: chartUC}
}

// build parses the shared query parameters and computes the chart.
// It writes the error response itself and returns nil on failure.
func (h *ChartHandler) build(w http.ResponseWriter, r *http.Request) *usecase.ChartStructure {
	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return nil
	}

	includeZero := r.URL.Query().Get("include_zero") == "true"

	chart, err := h.chartUC.BuildChartStructure(r.Context(), asOf, includeZero)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build chart", err.Error())
		return nil
	}

	return chart
}

// Get returns the grouped chart of accounts with rollup balances.
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	writeJSON(w, http.StatusOK, dto.ChartFromUseCase(chart))
}

// Totals returns per-family totals and the accounting equation.
func (h *ChartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	totals := h.chartUC.CalculateTotals(chart)

	writeJSON(w, http.StatusOK, dto.ChartTotalsFromUseCase(totals))
}

// ExportCSV streams the chart as a CSV report.
func (h *ChartHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	data, err := h.chartUC.ExportCSV(chart)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export chart", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="chart_of_accounts.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
