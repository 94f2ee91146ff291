package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobdesk/jobdesk-be/internal/apperr"
	"github.com/jobdesk/jobdesk-be/internal/auth"
	"github.com/jobdesk/jobdesk-be/internal/models"
	"github.com/jobdesk/jobdesk-be/internal/services"
	"github.com/rs/zerolog/log"
)

// JobHandler handles HTTP requests related to job postings.
type JobHandler struct {
	service services.JobServiceProvider
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobServiceProvider) *JobHandler {
	return &JobHandler{service: service}
}

// identity pulls the authenticated claims out of the request context. The
// middleware guarantees they are present on protected routes.
func identity(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, apperr.New(apperr.CodeStore, "no identity in request context"))
	}
	return claims, ok
}

// createJobPayload mirrors the wire shape of a create request. The job type
// arrives as "type" on create and as "job_type" on update; create accepts
// both.
type createJobPayload struct {
	models.JobFields
	Type string `json:"type"`
}

// ListOwned handles the request to list the caller's own job postings.
func (h *JobHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	jobs, err := h.service.ListOwned(claims.UserID)
	if err != nil {
		logError(err, "Failed to list owned jobs")
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, http.StatusOK, jobs)
}

// ListAll handles the public request to list every job posting.
func (h *JobHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.ListAll()
	if err != nil {
		logError(err, "Failed to list jobs")
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, http.StatusOK, jobs)
}

// Create handles the request to create a new job posting. The owner is
// taken from the token, never from the request body.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	var payload createJobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w)
		return
	}
	fields := payload.JobFields
	if fields.JobType == "" {
		fields.JobType = payload.Type
	}

	job, err := h.service.Create(claims.UserID, fields)
	if err != nil {
		logError(err, "Failed to create job")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// Get handles the request to get a single job posting by its ID.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.service.GetByID(id)
	if err != nil {
		logError(err, "Failed to get job by ID")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Update handles the request to update a job posting the caller owns.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var fields models.JobFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeBadRequest(w)
		return
	}

	job, err := h.service.Update(claims.UserID, id, fields)
	if err != nil {
		logError(err, "Failed to update job")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Delete handles the request to delete a job posting the caller owns.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := identity(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(claims.UserID, id); err != nil {
		logError(err, "Failed to delete job")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
