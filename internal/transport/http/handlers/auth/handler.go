package authhandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/identity"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Identity  *identity.Service
	Audit     *audit.Service
	JWTSecret string
}

func NewHandler(identitySvc *identity.Service, auditSvc *audit.Service, jwtSecret string) *Handler {
	return &Handler{Identity: identitySvc, Audit: auditSvc, JWTSecret: jwtSecret}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.handleMe)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !shared.DecodeValid(w, r, &payload) {
		return
	}

	// Inactive accounts are excluded from the lookup, so a deactivated
	// employee gets the same response as a wrong password.
	user, err := h.Identity.ActiveUserByEmail(r.Context(), payload.Email)
	if err != nil || identity.CheckPassword(user.PasswordHash, payload.Password) != nil {
		h.recordAttempt(r, 0, payload.Email, false)
		api.Message(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := identity.GenerateToken(h.JWTSecret, user.ID)
	if err != nil {
		slog.Error("token generation failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Message(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.recordAttempt(r, user.ID, payload.Email, true)
	api.JSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         user,
	})
}

func (h *Handler) recordAttempt(r *http.Request, userID int64, email string, success bool) {
	details := map[string]any{"email": email, "success": success}
	if err := h.Audit.Record(r.Context(), userID, "login_attempt", "user", nil, details, shared.ClientIP(r)); err != nil {
		slog.Warn("audit login_attempt failed", "err", err)
	}
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Message(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	api.JSON(w, http.StatusOK, user)
}
