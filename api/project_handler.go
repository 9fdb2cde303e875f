package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/access"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/metrics"
	"github.com/webiquedev/opsboard-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	now         func() time.Time
}

func newProjectHandler(projectRepo *database.ProjectRepo, now func() time.Time, notifier *errorNotifier) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger).withNotifier(notifier),
		logger:      logger,
		projectRepo: projectRepo,
		now:         now,
	}
}

// getAllProjects lists projects
// @Summary List projects
// @Description Lists projects newest first. Freelancer manager sessions only see Freelancer projects.
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Case-insensitive match on name, phone, notes or freelancer"
// @Param status query string false "active or completed"
// @Param label query string false "In-House or Freelancer"
// @Success 200 {object} envelope "Page of projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid filter"
// @Failure 401 {object} ErrorResponse "Unauthorized - No session"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.ProjectFilter{Search: r.URL.Query().Get("search"), Page: page}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status := models.ProjectStatus(raw)
			if !status.Valid() {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be active or completed"))
				return
			}
			filter.Status = &status
		}
		if raw := r.URL.Query().Get("label"); raw != "" {
			label := models.ProjectLabel(raw)
			if !label.Valid() {
				h.responder.WriteError(w, errs.NewInvalidFieldError("label", "must be In-House or Freelancer"))
				return
			}
			filter.Label = &label
		}

		if access.ActsAsFreelancerManager(sessionState(r)) {
			if filter.Label != nil && *filter.Label != models.LabelFreelancer {
				h.responder.WritePage(w, []*models.Project{}, page, 0)
				return
			}
			label := models.LabelFreelancer
			filter.Label = &label
		}

		projects, total, err := h.projectRepo.Find(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}

		h.responder.WritePage(w, projects, page, total)
	}
}

// loadProject fetches the {id} project and applies the read rule for
// freelancer managers. It writes the error response itself.
func (h projectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := idParam(r)
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}

	project, err := h.projectRepo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
		return nil, false
	}
	if project == nil {
		h.responder.WriteError(w, errs.NewNotFound("Project"))
		return nil, false
	}

	if access.ActsAsFreelancerManager(sessionState(r)) && !access.CanManagerView(project) {
		h.responder.WriteError(w, errs.NewAccessDeniedError("freelancer managers can only view Freelancer projects"))
		return nil, false
	}
	return project, true
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} envelope "Project details"
// @Failure 403 {object} ErrorResponse "Forbidden - Not visible to this session"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}
		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Freelancer manager sessions create active Freelancer projects with the standard fees.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.ProjectPatch true "Project data"
// @Success 201 {object} envelope "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 403 {object} ErrorResponse "Forbidden - Field not allowed for this session"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		var project *models.Project
		if access.ActsAsFreelancerManager(sessionState(r)) {
			var err error
			if project, err = access.NewManagerProject(patch); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		} else {
			project = &models.Project{}
			patch.Apply(project, h.now())
		}

		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteError(w, storeError("create", "project", err))
			return
		}

		metrics.RecordMutation("projects", "create")
		h.logger.Info().Str("projectID", project.ID.String()).Str("label", string(project.Label)).Msg("Project created")
		h.responder.WriteData(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Only the fields present in the body change. remainingAmount is always recomputed.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} envelope "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 403 {object} ErrorResponse "Forbidden - Access Denied"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		if access.ActsAsFreelancerManager(sessionState(r)) {
			if err := access.CheckManagerUpdate(project, patch); err != nil {
				h.logger.Warn().Str("projectID", id.String()).Strs("fields", patch.Fields()).Msg("Freelancer manager update refused")
				h.responder.WriteError(w, err)
				return
			}
		}

		patch.Apply(project, h.now())
		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, storeError("update", "project", err))
			return
		}

		metrics.RecordMutation("projects", "update")
		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// deleteProject removes a project
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} messageEnvelope "Deleted"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		found, err := h.projectRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		metrics.RecordMutation("projects", "delete")
		h.responder.WriteMessage(w, "Project deleted successfully")
	}
}

// completeProject marks a project completed
// @Summary Complete project
// @Description Sets status to completed. finishedDate is set only if it was empty.
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} envelope "Completed project"
// @Router /api/projects/{id}/complete [patch]
func (h projectHandler) completeProject() http.HandlerFunc {
	return h.transition("complete", func(p *models.Project, now time.Time) { p.Complete(now) })
}

// reactivateProject moves a completed project back to active
// @Summary Reactivate project
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} envelope "Reactivated project"
// @Router /api/projects/{id}/reactivate [patch]
func (h projectHandler) reactivateProject() http.HandlerFunc {
	return h.transition("reactivate", func(p *models.Project, _ time.Time) { p.Reactivate() })
}

func (h projectHandler) transition(operation string, apply func(*models.Project, time.Time)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		apply(project, h.now())
		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, storeError(operation, "project", err))
			return
		}

		metrics.RecordMutation("projects", operation)
		h.responder.WriteData(w, http.StatusOK, project)
	}
}
