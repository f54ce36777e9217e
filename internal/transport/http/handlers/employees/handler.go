package employeeshandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/identity"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Identity *identity.Service
	Audit    *audit.Service
}

func NewHandler(identitySvc *identity.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Identity: identitySvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(identity.RoleAdmin, identity.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(identity.RoleAdmin)).Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(identity.RoleAdmin)).Delete("/{employeeID}", h.handleDeactivate)
	})
}

func (h *Handler) audited(r *http.Request, caller access.AuthContext, action string, resourceID *int64, details any) {
	if err := h.Audit.Record(r.Context(), caller.UserID, action, "employee", resourceID, details, shared.ClientIP(r)); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	var (
		users []identity.User
		err   error
	)
	if caller.IsAdmin() {
		users, err = h.Identity.ListActive(r.Context())
	} else {
		users, err = h.Identity.ListActiveReports(r.Context(), caller.UserID)
	}
	if err != nil {
		slog.Error("employee list failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "list_employees", nil, nil)
	api.JSON(w, http.StatusOK, users)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	var payload identity.NewUser
	if !shared.DecodeValid(w, r, &payload) {
		return
	}

	exists, err := h.Identity.EmailExists(r.Context(), payload.Email)
	if err != nil {
		slog.Error("employee email check failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if exists {
		api.Message(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := identity.HashPassword(payload.Password)
	if err != nil {
		slog.Error("password hash failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := identity.User{
		Email:        payload.Email,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Role:         payload.Role,
		Department:   payload.Department,
		Position:     payload.Position,
		ManagerID:    payload.ManagerID,
		IsActive:     true,
	}
	if payload.HireDate != nil {
		hireDate, err := shared.ParseDate(*payload.HireDate)
		if err != nil {
			api.ValidationErrors(w, map[string][]string{"hire_date": {"Not a valid date"}})
			return
		}
		user.HireDate = &hireDate
	}

	created, err := h.Identity.Create(r.Context(), user)
	if err != nil {
		slog.Error("employee create failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "create_employee", &created.ID, map[string]any{"email": created.Email, "role": created.Role})
	api.JSON(w, http.StatusCreated, created)
}

// loadTarget resolves the route id to an active employee, writing the 404
// itself. Existence is checked before any permission decision so callers
// cannot distinguish "no such record" from "not yours".
func (h *Handler) loadTarget(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	id, err := shared.URLID(r, "employeeID")
	if err != nil {
		api.Message(w, http.StatusNotFound, "Employee not found")
		return identity.User{}, false
	}
	user, err := h.Identity.UserByID(r.Context(), id)
	if err != nil || !user.IsActive {
		api.Message(w, http.StatusNotFound, "Employee not found")
		return identity.User{}, false
	}
	return user, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	target, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanReadUser(caller, target) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}
	api.JSON(w, http.StatusOK, target)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	target, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanWriteUser(caller, target) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	var patch identity.UserPatch
	if !shared.DecodeValid(w, r, &patch) {
		return
	}

	if patch.Email != nil && *patch.Email != target.Email {
		exists, err := h.Identity.EmailExists(r.Context(), *patch.Email)
		if err != nil {
			slog.Error("employee email check failed", "err", err)
			api.Message(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if exists {
			api.Message(w, http.StatusBadRequest, "Email already exists")
			return
		}
	}

	update := identity.UserUpdate{
		Email:      patch.Email,
		FirstName:  patch.FirstName,
		LastName:   patch.LastName,
		Department: patch.Department,
		Position:   patch.Position,
		ManagerID:  patch.ManagerID,
		IsActive:   patch.IsActive,
	}
	// Role changes are an admin privilege; other callers' payloads keep
	// their current role.
	if caller.IsAdmin() {
		update.Role = patch.Role
	}
	if patch.HireDate != nil {
		hireDate, err := shared.ParseDate(*patch.HireDate)
		if err != nil {
			api.ValidationErrors(w, map[string][]string{"hire_date": {"Not a valid date"}})
			return
		}
		update.HireDate = &hireDate
	}

	updated, err := h.Identity.Update(r.Context(), target.ID, update)
	if err != nil {
		slog.Error("employee update failed", "err", err, "id", target.ID)
		api.Message(w, http.StatusBadRequest, "Update failed")
		return
	}

	h.audited(r, caller, "update_employee", &target.ID, patch)
	api.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	target, ok := h.loadTarget(w, r)
	if !ok {
		return
	}

	if err := h.Identity.Deactivate(r.Context(), target.ID); err != nil {
		slog.Error("employee deactivate failed", "err", err, "id", target.ID)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "deactivate_employee", &target.ID, map[string]any{"email": target.Email})
	api.Message(w, http.StatusOK, "Employee deactivated successfully")
}
