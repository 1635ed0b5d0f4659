package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/api/metrics"
	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// JobHandler serves the job catalog and the applications attached to jobs.
type JobHandler struct {
	jobs ports.JobService
	apps ports.ApplicationService
}

func NewJobHandler(jobs ports.JobService, apps ports.ApplicationService) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps}
}

// List returns all active jobs.
//
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  domain.Job
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobs.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get returns a single job.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create posts a new job owned by the caller.
//
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Request().Context(), actor, ports.JobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Status:       domain.JobStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update edits a job. Only its poster or an admin may do so.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      jobUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req jobUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Update(c.Request().Context(), actor, c.Param("id"), ports.JobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Status:       domain.JobStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job. Only its poster or an admin may do so.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job removed"})
}

// Apply submits the caller's application with a CV upload.
//
// @Summary      Apply for a job
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Job ID"
// @Param        cv  formData  file    true  "CV (.pdf, .doc, .docx)"
// @Success      201  {object}  applicationResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("cv")
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return err
		}
		return domain.NewValidationError("cv file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	app, err := h.apps.Submit(c.Request().Context(), actor, c.Param("id"), ports.CVUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     file,
	})
	switch {
	case err == nil:
		metrics.ApplicationsSubmittedTotal.WithLabelValues("created").Inc()
	case errors.Is(err, domain.ErrAlreadyApplied):
		metrics.ApplicationsSubmittedTotal.WithLabelValues("duplicate").Inc()
		return err
	default:
		metrics.ApplicationsSubmittedTotal.WithLabelValues("error").Inc()
		return err
	}

	return c.JSON(http.StatusCreated, applicationResponse{
		Message:     "Application created. Please complete payment to submit.",
		Application: app,
	})
}

// Applications lists the applications to a job for its poster or an admin.
//
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Job ID"
// @Success      200  {array}  domain.Application
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id}/applications [get]
func (h *JobHandler) Applications(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	apps, err := h.apps.ListForJob(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateApplicationStatus records the review decision on an application.
//
// @Summary      Update application status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application ID"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/applications/{id} [put]
func (h *JobHandler) UpdateApplicationStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.apps.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(app.Status)).Inc()
	return c.JSON(http.StatusOK, app)
}
