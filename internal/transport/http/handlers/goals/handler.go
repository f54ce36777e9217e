package goalshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/identity"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service  *goals.Service
	Resolver *access.Resolver
	Audit    *audit.Service
}

func NewHandler(service *goals.Service, resolver *access.Resolver, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Resolver: resolver, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{goalID}", h.handleGet)
		r.Put("/{goalID}", h.handleUpdate)
		r.With(middleware.RequireRole(identity.RoleAdmin, identity.RoleManager)).Post("/{goalID}/approve", h.handleApprove)
	})
}

func (h *Handler) audited(r *http.Request, caller access.AuthContext, action string, resourceID *int64, details any) {
	if err := h.Audit.Record(r.Context(), caller.UserID, action, "goal", resourceID, details, shared.ClientIP(r)); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	ids, err := h.Resolver.VisibleEmployeeIDs(r.Context(), caller)
	if err != nil {
		slog.Error("goal visibility resolve failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	list, err := h.Service.ListByEmployees(r.Context(), ids)
	if err != nil {
		slog.Error("goal list failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	api.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	var payload goals.NewGoal
	if !shared.DecodeValid(w, r, &payload) {
		return
	}

	goal := goals.Goal{
		EmployeeID:  caller.UserID,
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Status:      goals.StatusDraft,
	}
	if payload.Status != nil {
		goal.Status = *payload.Status
	}
	if payload.Progress != nil {
		goal.Progress = *payload.Progress
	}
	if payload.TargetDate != nil {
		targetDate, err := shared.ParseDate(*payload.TargetDate)
		if err != nil {
			api.ValidationErrors(w, map[string][]string{"target_date": {"Not a valid date"}})
			return
		}
		goal.TargetDate = &targetDate
	}

	created, err := h.Service.Create(r.Context(), goal)
	if err != nil {
		slog.Error("goal create failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "create_goal", &created.ID, map[string]any{"title": created.Title})
	api.JSON(w, http.StatusCreated, created)
}

func (h *Handler) loadTarget(w http.ResponseWriter, r *http.Request) (goals.Goal, *int64, bool) {
	id, err := shared.URLID(r, "goalID")
	if err != nil {
		api.Message(w, http.StatusNotFound, "Goal not found")
		return goals.Goal{}, nil, false
	}
	goal, ownerManagerID, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("goal load failed", "err", err, "id", id)
		}
		api.Message(w, http.StatusNotFound, "Goal not found")
		return goals.Goal{}, nil, false
	}
	return goal, ownerManagerID, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	goal, ownerManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanAccessOwned(caller, goal.EmployeeID, ownerManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}
	api.JSON(w, http.StatusOK, goal)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	goal, ownerManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanAccessOwned(caller, goal.EmployeeID, ownerManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	var patch goals.GoalPatch
	if !shared.DecodeValid(w, r, &patch) {
		return
	}

	update := goals.GoalUpdate{
		Title:       patch.Title,
		Description: patch.Description,
		Category:    patch.Category,
		Status:      patch.Status,
		Progress:    patch.Progress,
	}
	if patch.TargetDate != nil {
		targetDate, err := shared.ParseDate(*patch.TargetDate)
		if err != nil {
			api.ValidationErrors(w, map[string][]string{"target_date": {"Not a valid date"}})
			return
		}
		update.TargetDate = &targetDate
	}

	updated, err := h.Service.Update(r.Context(), goal.ID, update)
	if err != nil {
		slog.Error("goal update failed", "err", err, "id", goal.ID)
		api.Message(w, http.StatusBadRequest, "Update failed")
		return
	}

	h.audited(r, caller, "update_goal", &goal.ID, patch)
	api.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	goal, ownerManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanApproveGoal(caller, ownerManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	approved, err := h.Service.Approve(r.Context(), goal.ID)
	if err != nil {
		slog.Error("goal approve failed", "err", err, "id", goal.ID)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "approve_goal", &goal.ID, nil)
	api.JSON(w, http.StatusOK, approved)
}
