package skillshandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/skills"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service  *skills.Service
	Identity *identity.Service
	Resolver *access.Resolver
	Audit    *audit.Service
}

func NewHandler(service *skills.Service, identitySvc *identity.Service, resolver *access.Resolver, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Identity: identitySvc, Resolver: resolver, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/skills", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{skillID}", h.handleGet)
		r.Put("/{skillID}", h.handleUpdate)
	})
}

func (h *Handler) audited(r *http.Request, caller access.AuthContext, action string, resourceID *int64, details any) {
	if err := h.Audit.Record(r.Context(), caller.UserID, action, "skill", resourceID, details, shared.ClientIP(r)); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	ids, err := h.Resolver.VisibleEmployeeIDs(r.Context(), caller)
	if err != nil {
		slog.Error("skill visibility resolve failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	list, err := h.Service.ListByEmployees(r.Context(), ids)
	if err != nil {
		slog.Error("skill list failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	api.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	var payload skills.NewSkill
	if !shared.DecodeValid(w, r, &payload) {
		return
	}

	ownerID := caller.UserID
	if payload.EmployeeID != nil && *payload.EmployeeID != caller.UserID {
		owner, err := h.Identity.UserByID(r.Context(), *payload.EmployeeID)
		if err != nil || !owner.IsActive {
			api.Message(w, http.StatusNotFound, "Employee not found")
			return
		}
		if !access.CanAccessOwned(caller, owner.ID, owner.ManagerID) {
			api.Message(w, http.StatusForbidden, "Access denied")
			return
		}
		ownerID = owner.ID
	}

	now := time.Now()
	skill := skills.Skill{
		EmployeeID:       ownerID,
		SkillName:        payload.SkillName,
		ProficiencyLevel: payload.ProficiencyLevel,
		Category:         payload.Category,
		TargetLevel:      payload.TargetLevel,
		LastAssessed:     &now,
	}

	created, err := h.Service.Create(r.Context(), skill)
	if err != nil {
		slog.Error("skill create failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "create_skill", &created.ID, map[string]any{"skill_name": created.SkillName, "employee_id": created.EmployeeID})
	api.JSON(w, http.StatusCreated, created)
}

func (h *Handler) loadTarget(w http.ResponseWriter, r *http.Request) (skills.Skill, *int64, bool) {
	id, err := shared.URLID(r, "skillID")
	if err != nil {
		api.Message(w, http.StatusNotFound, "Skill not found")
		return skills.Skill{}, nil, false
	}
	skill, ownerManagerID, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("skill load failed", "err", err, "id", id)
		}
		api.Message(w, http.StatusNotFound, "Skill not found")
		return skills.Skill{}, nil, false
	}
	return skill, ownerManagerID, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	skill, ownerManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanAccessOwned(caller, skill.EmployeeID, ownerManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}
	api.JSON(w, http.StatusOK, skill)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	skill, ownerManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanAccessOwned(caller, skill.EmployeeID, ownerManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	var patch skills.SkillPatch
	if !shared.DecodeValid(w, r, &patch) {
		return
	}

	update := skills.SkillUpdate{
		SkillName:        patch.SkillName,
		ProficiencyLevel: patch.ProficiencyLevel,
		Category:         patch.Category,
		TargetLevel:      patch.TargetLevel,
	}
	if patch.LastAssessed != nil {
		assessed, err := shared.ParseDate(*patch.LastAssessed)
		if err != nil {
			api.ValidationErrors(w, map[string][]string{"last_assessed": {"Not a valid date"}})
			return
		}
		update.LastAssessed = &assessed
	} else if patch.ProficiencyLevel != nil {
		// A fresh proficiency rating counts as an assessment.
		now := time.Now()
		update.LastAssessed = &now
	}

	updated, err := h.Service.Update(r.Context(), skill.ID, update)
	if err != nil {
		slog.Error("skill update failed", "err", err, "id", skill.ID)
		api.Message(w, http.StatusBadRequest, "Update failed")
		return
	}

	h.audited(r, caller, "update_skill", &skill.ID, patch)
	api.JSON(w, http.StatusOK, updated)
}
