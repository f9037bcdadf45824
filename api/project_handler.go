package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/discovery"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/models"
	"github.com/sundai-club/sundai-backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger

	projectRepo *database.ProjectRepo
	likeRepo    *database.LikeRepo
	tagRepo     *database.TagRepo
	trending    *services.TrendingService
	storage     *services.Storage
}

func newProjectHandler(
	projectRepo *database.ProjectRepo,
	likeRepo *database.LikeRepo,
	tagRepo *database.TagRepo,
	trending *services.TrendingService,
	storage *services.Storage,
) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		likeRepo:    likeRepo,
		tagRepo:     tagRepo,
		trending:    trending,
		storage:     storage,
	}
}

// ProjectListResponse is the discovery listing: the filtered and
// sorted projects plus the global tag counts and the canonical query
// string for the current view.
type ProjectListResponse struct {
	Projects        []models.Project `json:"projects"`
	Total           int              `json:"total"`
	TechTagCounts   map[string]int   `json:"tech_tag_counts"`
	DomainTagCounts map[string]int   `json:"domain_tag_counts"`
	Query           string           `json:"query"`
}

// listProjects runs the discovery pipeline server-side. Filter and
// sort state comes entirely from the query parameters, so listing URLs
// are shareable and reconstruct the same view.
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param search query string false "Substring match on title or preview"
// @Param status query []string false "Status filter; empty means all"
// @Param tech_tag query []string false "Tech tags (intersection)"
// @Param domain_tag query []string false "Domain tags (intersection)"
// @Param from_date query string false "Inclusive start-date lower bound (YYYY-MM-DD)"
// @Param to_date query string false "Inclusive start-date upper bound (YYYY-MM-DD)"
// @Param sort query string false "trending|newest|oldest|likes|updated|alphabetical"
// @Success 200 {object} ProjectListResponse
// @Router /api/projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := discovery.DecodeQuery(r.URL.Query())

		// Not part of the shareable URL state, so read directly.
		state.ShowBroken = r.URL.Query().Get("show_broken") == "true"

		projects, err := h.projectRepo.FindAll("")
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		tech, domain := discovery.TagCounts(projects)
		result := discovery.Apply(projects, state, time.Now())

		h.responder.WriteJSON(w, ProjectListResponse{
			Projects:        result,
			Total:           len(result),
			TechTagCounts:   tech,
			DomainTagCounts: domain,
			Query:           state.EncodeQuery().Encode(),
		})
	}
}

// trendingProjects serves one ranked rail from the cached snapshot.
// @Summary Trending projects
// @Tags Projects
// @Produce json
// @Param range query string false "week|month|all" default(week)
// @Param limit query int false "Maximum projects to return" default(10)
// @Success 200 {array} models.Project
// @Router /api/projects/trending [get]
func (h projectHandler) trendingProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng := services.TrendingRange(r.URL.Query().Get("range"))
		if rng == "" {
			rng = services.RangeWeek
		}
		if !services.ValidTrendingRange(rng) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("range", "must be one of week, month, all"))
			return
		}

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a positive integer"))
				return
			}
			limit = parsed
		}

		rail, err := h.trending.Range(r.Context(), rng, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("rank", "projects", err))
			return
		}

		h.responder.WriteJSON(w, rail)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /api/project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject submits a new project. It enters the listing as
// PENDING with the submitter as launch lead.
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} models.Project
// @Router /api/project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.Malformed("project"))
			return
		}

		if project.Title == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("title"))
			return
		}
		if project.Preview == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("preview"))
			return
		}

		project.ID = uuid.Nil
		project.Status = models.ProjectPending
		project.LaunchLeadID = hacker.ID
		if project.StartDate == nil {
			now := time.Now()
			project.StartDate = &now
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateProject edits a project. Only the launch lead or an admin may
// edit; handing over the lead keeps the old lead on the project as a
// participant.
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 403 {object} ErrorResponse
// @Router /api/project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if existing.LaunchLeadID != hacker.ID && !hacker.IsAdmin() {
			h.responder.WriteError(w, errs.NewForbiddenError("only the launch lead or an admin can edit a project"))
			return
		}

		var update models.Project
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.Malformed("project"))
			return
		}

		update.ID = projectID
		update.CreatedAt = existing.CreatedAt

		// Status changes are an admin call; everyone else keeps the
		// current review state.
		if !hacker.IsAdmin() {
			update.Status = existing.Status
		}

		// A lead handover keeps the old lead on the project roster.
		if update.LaunchLeadID == uuid.Nil {
			update.LaunchLeadID = existing.LaunchLeadID
		} else if update.LaunchLeadID != existing.LaunchLeadID {
			if !rosterContains(existing.Participants, existing.LaunchLeadID) {
				update.Participants = append(update.Participants, models.Participant{
					ProjectID: projectID,
					HackerID:  existing.LaunchLeadID,
					Role:      "hacker",
				})
			}
		}

		if err := h.projectRepo.Update(&update); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// likeProject records a like; liking twice is a no-op.
// @Summary Like project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]any
// @Router /api/projects/{projectID}/like [post]
func (h projectHandler) likeProject() http.HandlerFunc {
	return h.setLike(true)
}

// unlikeProject removes a like; removing an absent like is a no-op.
// @Summary Unlike project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]any
// @Router /api/projects/{projectID}/like [delete]
func (h projectHandler) unlikeProject() http.HandlerFunc {
	return h.setLike(false)
}

func (h projectHandler) setLike(liked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if liked {
			err = h.likeRepo.Add(hacker.ID, projectID)
		} else {
			err = h.likeRepo.Delete(hacker.ID, projectID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "like", err))
			return
		}

		count, err := h.likeRepo.CountForProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "likes", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":     "success",
			"liked":      liked,
			"like_count": count,
		})
	}
}

// UploadURLRequest asks for a presigned upload slot.
type UploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadURLResponse carries the object key to store on the entity and
// the short-lived URL to PUT the bytes to.
type UploadURLResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// thumbnailUploadURL hands the launch lead a presigned URL for the
// project thumbnail. The client PUTs directly to object storage and
// then saves the key via updateProject.
func (h projectHandler) thumbnailUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if project.LaunchLeadID != hacker.ID && !hacker.IsAdmin() {
			h.responder.WriteError(w, errs.NewForbiddenError("only the launch lead or an admin can change the thumbnail"))
			return
		}

		var req UploadURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("upload request"))
			return
		}
		if req.Filename == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("filename"))
			return
		}

		key := services.NewUploadKey("thumbnails", req.Filename)
		url, err := h.storage.UploadURL(r.Context(), key, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageError("presign thumbnail upload", err))
			return
		}

		h.responder.WriteJSON(w, UploadURLResponse{Key: key, UploadURL: url})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "projectID")
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return id, nil
}

func rosterContains(participants []models.Participant, hackerID uuid.UUID) bool {
	for _, p := range participants {
		if p.HackerID == hackerID {
			return true
		}
	}
	return false
}
