package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/go-playground/validator/v10"
)

// responder - общие помощники обработчиков: разбор запроса, ответы, ошибки
type responder struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{
		validator: validator.New(),
		logger:    logger,
	}
}

// decode читает JSON тело и проверяет теги validate. При ошибке ответ уже отправлен.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

// pathID разбирает числовой параметр пути
func (h responder) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name), raw)
		return 0, false
	}
	return id, true
}

func (h responder) handleServiceError(w http.ResponseWriter, err error) {
	var dbErr *domain.DBError

	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrDepartmentNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrManagerNotFound),
		errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrNotAssigned),
		errors.Is(err, domain.ErrIndicatorNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrDuplicateAssignment),
		errors.Is(err, domain.ErrDuplicateAdminID),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrAlreadyAdmin),
		errors.Is(err, domain.ErrAlreadyInDepartment),
		errors.Is(err, domain.ErrForeignKeyViolation):
		h.respondError(w, http.StatusConflict, err.Error(), "")

	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrUsernameTooShort):
		h.respondError(w, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, domain.ErrInvalidSession),
		errors.Is(err, domain.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, err.Error(), "")

	case errors.Is(err, domain.ErrWrongCurrentPassword):
		h.respondError(w, http.StatusForbidden, err.Error(), "")

	case errors.Is(err, domain.ErrIndicatorsUnavailable):
		h.logger.Warn("indicators unavailable", slog.Any("error", err))
		h.respondError(w, http.StatusBadGateway, domain.ErrIndicatorsUnavailable.Error(), "")

	case errors.As(err, &dbErr):
		h.logger.Error("database error", slog.String("code", dbErr.Code), slog.String("message", dbErr.Message))
		h.respondError(w, http.StatusInternalServerError, "database error", dbErr.Message)

	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
