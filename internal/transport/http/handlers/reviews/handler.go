package reviewshandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"perftrack/internal/domain/access"
	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service  *reviews.Service
	Identity *identity.Service
	Resolver *access.Resolver
	Audit    *audit.Service
}

func NewHandler(service *reviews.Service, identitySvc *identity.Service, resolver *access.Resolver, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Identity: identitySvc, Resolver: resolver, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{reviewID}", h.handleGet)
		r.Put("/{reviewID}", h.handleUpdate)
		r.Post("/{reviewID}/submit", h.handleSubmit)
	})
}

func (h *Handler) audited(r *http.Request, caller access.AuthContext, action string, resourceID *int64, details any) {
	if err := h.Audit.Record(r.Context(), caller.UserID, action, "review", resourceID, details, shared.ClientIP(r)); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	ids, err := h.Resolver.VisibleEmployeeIDs(r.Context(), caller)
	if err != nil {
		slog.Error("review visibility resolve failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Authored reviews are always visible, so peers see reviews they wrote
	// about colleagues outside their own scope.
	list, err := h.Service.ListVisible(r.Context(), ids, caller.UserID)
	if err != nil {
		slog.Error("review list failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	api.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	var payload reviews.NewReview
	if !shared.DecodeValid(w, r, &payload) {
		return
	}

	reviewee, err := h.Identity.UserByID(r.Context(), payload.RevieweeID)
	if err != nil || !reviewee.IsActive {
		api.Message(w, http.StatusNotFound, "Reviewee not found")
		return
	}

	if denial := access.ReviewCreateDenial(caller, payload.ReviewType, payload.RevieweeID, reviewee.ManagerID); denial != "" {
		api.Message(w, http.StatusForbidden, denial)
		return
	}

	review := reviews.Review{
		RevieweeID:          payload.RevieweeID,
		ReviewerID:          caller.UserID,
		ReviewType:          payload.ReviewType,
		ReviewPeriod:        payload.ReviewPeriod,
		OverallRating:       payload.OverallRating,
		TechnicalSkills:     payload.TechnicalSkills,
		Communication:       payload.Communication,
		Leadership:          payload.Leadership,
		Teamwork:            payload.Teamwork,
		Comments:            payload.Comments,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		Status:              reviews.StatusDraft,
	}

	created, err := h.Service.Create(r.Context(), review)
	if err != nil {
		slog.Error("review create failed", "err", err)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "create_review", &created.ID, map[string]any{"reviewee_id": created.RevieweeID, "review_type": created.ReviewType})
	api.JSON(w, http.StatusCreated, created)
}

func (h *Handler) loadTarget(w http.ResponseWriter, r *http.Request) (reviews.Review, *int64, bool) {
	id, err := shared.URLID(r, "reviewID")
	if err != nil {
		api.Message(w, http.StatusNotFound, "Review not found")
		return reviews.Review{}, nil, false
	}
	review, revieweeManagerID, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("review load failed", "err", err, "id", id)
		}
		api.Message(w, http.StatusNotFound, "Review not found")
		return reviews.Review{}, nil, false
	}
	return review, revieweeManagerID, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	review, revieweeManagerID, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanReadReview(caller, review, revieweeManagerID) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}
	api.JSON(w, http.StatusOK, review)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	review, _, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanWriteReview(caller, review) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	var patch reviews.ReviewPatch
	if !shared.DecodeValid(w, r, &patch) {
		return
	}

	updated, err := h.Service.Update(r.Context(), review.ID, patch)
	if err != nil {
		slog.Error("review update failed", "err", err, "id", review.ID)
		api.Message(w, http.StatusBadRequest, "Update failed")
		return
	}

	h.audited(r, caller, "update_review", &review.ID, patch)
	api.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.Caller(r.Context())

	review, _, ok := h.loadTarget(w, r)
	if !ok {
		return
	}
	if !access.CanWriteReview(caller, review) {
		api.Message(w, http.StatusForbidden, "Access denied")
		return
	}

	submitted, err := h.Service.Submit(r.Context(), review.ID)
	if err != nil {
		slog.Error("review submit failed", "err", err, "id", review.ID)
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.audited(r, caller, "submit_review", &review.ID, nil)
	api.JSON(w, http.StatusOK, submitted)
}
