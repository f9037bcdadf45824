package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger

	tagRepo *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// listTags returns all tags of the requested type with per-tag
// project counts.
// @Summary List tags
// @Tags Tags
// @Produce json
// @Param tagType path string true "tech or domain"
// @Router /api/tags/{tagType} [get]
func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagType, err := parseTagType(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if tagType == database.TagTech {
			tags, err := h.tagRepo.FindAllTech()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "tech tags", err))
				return
			}
			h.responder.WriteJSON(w, tags)
			return
		}

		tags, err := h.tagRepo.FindAllDomain()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "domain tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// TagRequest is the create-tag payload.
type TagRequest struct {
	Name string `json:"name"`
}

// createTag adds a new tag. Names are deduplicated case-insensitively;
// submitting "react" when "React" exists is a conflict.
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tagType path string true "tech or domain"
// @Failure 409 {object} ErrorResponse
// @Router /api/tags/{tagType} [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagType, err := parseTagType(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("tag"))
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("name"))
			return
		}

		if tagType == database.TagTech {
			existing, err := h.tagRepo.TechByNameFold(name)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "tech tag", err))
				return
			}
			if existing != nil {
				h.responder.WriteError(w, errs.NewAlreadyExists("tech tag"))
				return
			}

			tag := models.TechTag{Name: name}
			if err := h.tagRepo.AddTech(&tag); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create", "tech tag", err))
				return
			}
			w.WriteHeader(http.StatusCreated)
			h.responder.WriteJSON(w, tag)
			return
		}

		existing, err := h.tagRepo.DomainByNameFold(name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "domain tag", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("domain tag"))
			return
		}

		tag := models.DomainTag{Name: name}
		if err := h.tagRepo.AddDomain(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "domain tag", err))
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

func parseTagType(r *http.Request) (database.TagType, error) {
	raw := chi.URLParam(r, "tagType")
	tagType := database.TagType(raw)
	if tagType != database.TagTech && tagType != database.TagDomain {
		return "", errs.NewInvalidFieldError("tagType", "must be tech or domain")
	}
	return tagType, nil
}
