package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/service"
)

type EmployeeHandler struct {
	responder
	empService service.EmployeeService
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:  newResponder(logger),
		empService: empService,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByRut(w http.ResponseWriter, r *http.Request) {
	rut := strings.TrimSpace(r.PathValue("rut"))
	if rut == "" {
		h.respondError(w, http.StatusBadRequest, "invalid rut", "")
		return
	}

	emp, err := h.empService.GetByRut(r.Context(), rut)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	// Маршрут публичный: только id и имя для формы учёта часов
	h.respondJSON(w, http.StatusOK, toEmployeeLookupResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.empService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeSummaries(items))
}

// AssignDepartment: POST /departments/{id}/employees
func (h *EmployeeHandler) AssignDepartment(w http.ResponseWriter, r *http.Request) {
	deptID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.empService.AssignDepartment(r.Context(), req.EmployeeID, deptID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IsInDepartment: GET /departments/{id}/employees/{eid}
func (h *EmployeeHandler) IsInDepartment(w http.ResponseWriter, r *http.Request) {
	deptID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	empID, ok := h.pathID(w, r, "eid")
	if !ok {
		return
	}

	member, err := h.empService.IsInDepartment(r.Context(), empID, deptID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"member": member})
}

func (h *EmployeeHandler) RemoveFromDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.empService.RemoveFromDepartment(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordHours: POST /hours. Сотрудник идентифицируется по RUT.
func (h *EmployeeHandler) RecordHours(w http.ResponseWriter, r *http.Request) {
	var req dto.LogHoursRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.GetByRut(r.Context(), req.Rut)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	err = h.empService.RecordHours(r.Context(), &dto.RecordHoursRequest{
		EmployeeID:  emp.ID,
		ProjectID:   req.ProjectID,
		Date:        req.Date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ListProjectHours: GET /projects/{id}/hours
func (h *EmployeeHandler) ListProjectHours(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	records, err := h.empService.ListHoursByProject(r.Context(), projectID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toHourRecordResponses(records))
}
