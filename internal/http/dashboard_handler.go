package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/shop-admin/internal/service"
)

type dashboardHandler struct {
	dashboardSvc service.DashboardService
}

func newDashboardHandler(dashboardSvc service.DashboardService) *dashboardHandler {
	return &dashboardHandler{
		dashboardSvc: dashboardSvc,
	}
}

func (h *dashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.dashboardSvc.GetSummary(r.Context())
	if err != nil {
		return fmt.Errorf("dashboard service get summary: %w", err)
	}

	return writeJSON(w, http.StatusOK, summary)
}

func (h *dashboardHandler) GetInventoryOverview(w http.ResponseWriter, r *http.Request) error {
	overview, err := h.dashboardSvc.GetInventoryOverview(r.Context())
	if err != nil {
		return fmt.Errorf("dashboard service get inventory overview: %w", err)
	}

	return writeJSON(w, http.StatusOK, overview)
}
