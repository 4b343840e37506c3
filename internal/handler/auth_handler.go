package handler

import (
	"log/slog"
	"net/http"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/middleware"
	"github.com/business-admin/internal/service"
)

// AuthHandler - вход, смена пароля и учётные записи администраторов
type AuthHandler struct {
	responder
	credService service.CredentialService
	sessions    *middleware.Sessions
}

func NewAuthHandler(credService service.CredentialService, sessions *middleware.Sessions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		responder:   newResponder(logger),
		credService: credService,
		sessions:    sessions,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	admin, err := h.credService.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.sessions.Issue(admin.AdminID, admin.ID, admin.Username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.LoginResponse{
		Token:      token,
		EmployeeID: admin.ID,
		AdminID:    admin.AdminID,
		Username:   admin.Username,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.handleServiceError(w, domain.ErrInvalidSession)
		return
	}

	admin, err := h.credService.GetAdministrator(r.Context(), session.EmployeeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toAdministratorResponse(admin))
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	var username string
	if session, ok := middleware.GetSession(r.Context()); ok {
		username = session.Username
	}

	if err := h.credService.ChangePassword(r.Context(), username, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) CreateAdministrator(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdministratorRequest
	if !h.decode(w, r, &req) {
		return
	}

	admin, err := h.credService.CreateAdministrator(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toAdministratorResponse(admin))
}

func (h *AuthHandler) ListAdministrators(w http.ResponseWriter, r *http.Request) {
	admins, err := h.credService.ListAdministrators(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toAdministratorSummaries(admins))
}

func (h *AuthHandler) NextAdminID(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.NextIDResponse{
		NextID: h.credService.NextSuggestedAdminID(r.Context()),
	})
}
