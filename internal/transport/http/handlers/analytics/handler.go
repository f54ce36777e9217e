package analyticshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/analytics"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/identity"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *analytics.Service
	Audit   *audit.Service
}

func NewHandler(service *analytics.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Use(middleware.RequireRole(identity.RoleAdmin, identity.RoleManager))
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/dashboard/export", h.handleDashboardExport)
		r.Get("/performance-trends", h.handleTrends)
		r.Get("/team-comparison", h.handleTeamComparison)
		r.Get("/skills-gap", h.handleSkillsGap)
	})
}

func (h *Handler) audited(r *http.Request, caller access.AuthContext, action string) {
	if err := h.Audit.Record(r.Context(), caller.UserID, action, "analytics", nil, nil, shared.ClientIP(r)); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	dashboard, err := h.Service.Dashboard(r.Context(), caller)
	if err != nil {
		slog.Error("dashboard build failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "view_dashboard")
	api.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) handleDashboardExport(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	dashboard, err := h.Service.Dashboard(r.Context(), caller)
	if err != nil {
		slog.Error("dashboard build failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Dashboard")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", dashboard.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Goals: %d (%.2f%% completed)", dashboard.TotalGoals, dashboard.GoalCompletionRate))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Reviews: %d (%.2f%% completed)", dashboard.TotalReviews, dashboard.ReviewCompletionRate))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average overall rating: %.2f", dashboard.AverageRatings.Overall))
	pdf.Ln(10)
	if len(dashboard.DepartmentBreakdown) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Employees by department")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		for _, dept := range dashboard.DepartmentBreakdown {
			pdf.Cell(0, 7, fmt.Sprintf("%s: %d", dept.Department, dept.Count))
			pdf.Ln(6)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.pdf"`)
	if err := pdf.Output(w); err != nil {
		slog.Error("dashboard pdf write failed", "err", err)
		return
	}

	h.audited(r, caller, "export_dashboard")
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	trends, err := h.Service.PerformanceTrends(r.Context(), caller)
	if err != nil {
		slog.Error("performance trends failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "view_performance_trends")
	api.JSON(w, http.StatusOK, trends)
}

func (h *Handler) handleTeamComparison(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	comparison, err := h.Service.TeamComparison(r.Context(), caller)
	if err != nil {
		slog.Error("team comparison failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "view_team_comparison")
	api.JSON(w, http.StatusOK, comparison)
}

func (h *Handler) handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	gaps, err := h.Service.SkillsGap(r.Context(), caller)
	if err != nil {
		slog.Error("skills gap failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "view_skills_gap")
	api.JSON(w, http.StatusOK, gaps)
}
