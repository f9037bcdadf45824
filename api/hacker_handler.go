package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/models"
	"github.com/sundai-club/sundai-backend/services"
)

type hackerHandler struct {
	responder Responder
	logger    zerolog.Logger

	hackerRepo *database.HackerRepo
	storage    *services.Storage
}

func newHackerHandler(hackerRepo *database.HackerRepo, storage *services.Storage) hackerHandler {
	logger := log.With().Str("handlerName", "hackerHandler").Logger()

	return hackerHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		hackerRepo: hackerRepo,
		storage:    storage,
	}
}

// ProfileResponse is the caller's own profile plus a short-lived
// avatar URL derived from the stored key.
type ProfileResponse struct {
	models.Hacker
	AvatarURL string `json:"avatar_url,omitempty"`
}

// getProfile returns the authenticated hacker's profile.
// @Summary Get own profile
// @Tags Hackers
// @Produce json
// @Success 200 {object} ProfileResponse
// @Router /api/me [get]
func (h hackerHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		resp := ProfileResponse{Hacker: *hacker}
		if hacker.AvatarKey != nil {
			url, err := h.storage.DownloadURL(r.Context(), *hacker.AvatarKey)
			if err != nil {
				h.logger.Warn().Err(err).Msg("Failed to presign avatar URL")
			} else {
				resp.AvatarURL = url
			}
		}

		h.responder.WriteJSON(w, resp)
	}
}

// updateProfile edits the caller's own profile. Role and identity
// fields stay as they are; role changes go through the provider's
// admin tooling.
// @Summary Update own profile
// @Tags Hackers
// @Accept json
// @Produce json
// @Success 200 {object} models.Hacker
// @Router /api/me [put]
func (h hackerHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var update models.Hacker
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.responder.WriteError(w, errs.Malformed("profile"))
			return
		}

		if update.Name != "" {
			hacker.Name = update.Name
		}
		hacker.Bio = update.Bio
		hacker.Links = update.Links
		hacker.Subscribed = update.Subscribed
		if update.AvatarKey != nil {
			hacker.AvatarKey = update.AvatarKey
		}

		if err := h.hackerRepo.Update(hacker); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "hacker", err))
			return
		}

		h.responder.WriteJSON(w, hacker)
	}
}

// avatarUploadURL hands the caller a presigned URL for a new avatar.
// The client PUTs the image and saves the key via updateProfile.
func (h hackerHandler) avatarUploadURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ctxGetHacker(r.Context()); err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
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

		key := services.NewUploadKey("avatars", req.Filename)
		url, err := h.storage.UploadURL(r.Context(), key, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageError("presign avatar upload", err))
			return
		}

		h.responder.WriteJSON(w, UploadURLResponse{Key: key, UploadURL: url})
	}
}
