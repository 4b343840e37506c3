package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/middleware"
	"github.com/business-admin/internal/service"
)

type IndicatorHandler struct {
	responder
	indService service.IndicatorService
}

func NewIndicatorHandler(indService service.IndicatorService, logger *slog.Logger) *IndicatorHandler {
	return &IndicatorHandler{
		responder:  newResponder(logger),
		indService: indService,
	}
}

// Live возвращает текущие значения без сохранения
func (h *IndicatorHandler) Live(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.indService.Fetch(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toIndicatorResponses(indicators))
}

// Archive получает текущие значения и сохраняет их от имени администратора сессии
func (h *IndicatorHandler) Archive(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.handleServiceError(w, domain.ErrInvalidSession)
		return
	}

	result, err := h.indService.FetchAndArchive(r.Context(), session.AdminID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toBatchResultResponse(result))
}

func (h *IndicatorHandler) Save(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.handleServiceError(w, domain.ErrInvalidSession)
		return
	}

	var req dto.SaveIndicatorRequest
	if !h.decode(w, r, &req) {
		return
	}

	snapshot, err := h.indService.Save(r.Context(), req.Name, req.Value, req.ValueDate, session.AdminID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	snapshot.AdminUsername = session.Username
	h.respondJSON(w, http.StatusCreated, toSnapshotResponse(snapshot))
}

func (h *IndicatorHandler) History(w http.ResponseWriter, r *http.Request) {
	var query dto.HistoryQuery
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		query.Limit = limit
	}
	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	history, err := h.indService.History(r.Context(), query.Limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.IndicatorSnapshotResponse, 0, len(history))
	for i := range history {
		resp = append(resp, toSnapshotResponse(&history[i]))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *IndicatorHandler) Latest(w http.ResponseWriter, r *http.Request) {
	value, err := h.indService.Latest(r.Context(), r.PathValue("name"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.IndicatorValueResponse{
		Value:     value.Value,
		ValueDate: formatISO(value.ValueDate),
		QueryDate: value.QueryDate.Format(queryTimeLayout),
	})
}

func (h *IndicatorHandler) NextRecordID(w http.ResponseWriter, r *http.Request) {
	id, err := h.indService.NextRecordID(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NextIDResponse{NextID: id})
}

func (h *IndicatorHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.indService.ClearHistory(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ClearHistoryResponse{Deleted: deleted})
}
