package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kirkbot2/speedaudit/internal/api/dto"
	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/errors"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/pkg/utils"
	"github.com/kirkbot2/speedaudit/internal/pkg/validator"
)

// AuditHandler handles audit endpoints
type AuditHandler struct {
	service  audit.Service
	validate *validator.Validator
	logger   *logger.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(service audit.Service, validate *validator.Validator, log *logger.Logger) *AuditHandler {
	return &AuditHandler{
		service:  service,
		validate: validate,
		logger:   log,
	}
}

// Run handles POST /api/v1/audits
func (h *AuditHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.RunAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrors := h.validate.Validate(&req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	result, err := h.service.RunAudit(r.Context(), req.ToRunRequest())
	if err != nil {
		h.writeServiceError(w, err, "Failed to run audit")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, result)
}

// Get handles GET /api/v1/audits/{id}
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid audit ID"))
		return
	}

	result, err := h.service.GetAudit(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get audit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// List handles GET /api/v1/audits
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query, appErr := parseListQuery(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if validationErrors := h.validate.Validate(query); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	results, err := h.service.History(r.Context(), query.ToFilter())
	if err != nil {
		h.writeServiceError(w, err, "Failed to list audits")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, results)
}

// Latest handles GET /api/v1/audits/latest
func (h *AuditHandler) Latest(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		utils.WriteError(w, errors.BadRequest("Query parameter 'url' is required"))
		return
	}

	result, err := h.service.LatestByTarget(r.Context(), target)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get latest audit")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

func parseListQuery(r *http.Request) (*dto.ListAuditsQuery, *errors.AppError) {
	q := &dto.ListAuditsQuery{
		URL: r.URL.Query().Get("url"),
	}

	if raw := r.URL.Query().Get("min_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.BadRequest("min_score must be an integer")
		}
		q.MinScore = &v
	}
	if raw := r.URL.Query().Get("max_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.BadRequest("max_score must be an integer")
		}
		q.MaxScore = &v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.BadRequest("limit must be an integer")
		}
		q.Limit = v
	}

	return q, nil
}

// writeServiceError maps service errors onto HTTP responses, preserving
// the engine's error codes (network and timeout failures carry their own
// status codes already).
func (h *AuditHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		utils.WriteError(w, appErr)
		return
	}

	h.logger.WithError(err).Error(fallback)
	utils.WriteError(w, errors.Internal(fallback, err))
}
