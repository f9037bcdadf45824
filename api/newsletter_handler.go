package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/services"
)

type newsletterHandler struct {
	responder Responder
	logger    zerolog.Logger

	newsletterRepo *database.NewsletterRepo
	newsletter     *services.NewsletterService
}

func newNewsletterHandler(newsletterRepo *database.NewsletterRepo, newsletter *services.NewsletterService) newsletterHandler {
	logger := log.With().Str("handlerName", "newsletterHandler").Logger()

	return newsletterHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		newsletterRepo: newsletterRepo,
		newsletter:     newsletter,
	}
}

// unsubscribe processes the tokenized link from a newsletter footer.
// It is a public GET so it works straight from the email client.
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Produce json
// @Param token query string true "Unsubscribe token"
// @Router /api/newsletter/unsubscribe [get]
func (h newsletterHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("token"))
			return
		}

		if err := h.newsletter.Unsubscribe(token); err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError(err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "You have been unsubscribed from the newsletter.",
		})
	}
}

// listNewsletters returns all digests, drafts included.
// @Summary List newsletters
// @Tags Newsletter
// @Produce json
// @Success 200 {array} models.Newsletter
// @Router /api/newsletters [get]
func (h newsletterHandler) listNewsletters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		newsletters, err := h.newsletterRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "newsletters", err))
			return
		}
		h.responder.WriteJSON(w, newsletters)
	}
}

// GenerateRequest names the week to build a digest for.
type GenerateRequest struct {
	WeekID uuid.UUID `json:"week_id"`
}

// generate builds a draft digest for a week: that week's approved
// projects, the trending rail and an intro. Nothing is emailed until
// send is called.
// @Summary Generate newsletter draft
// @Tags Newsletter
// @Accept json
// @Produce json
// @Success 201 {object} models.Newsletter
// @Router /api/newsletter/generate [post]
func (h newsletterHandler) generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("generate request"))
			return
		}
		if req.WeekID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingFieldError("week_id"))
			return
		}

		newsletter, err := h.newsletter.Generate(r.Context(), req.WeekID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newsletter)
	}
}

// send emails a draft to every subscribed hacker and marks it sent.
// Individual delivery failures are logged and skipped.
// @Summary Send newsletter
// @Tags Newsletter
// @Produce json
// @Param newsletterID path string true "Newsletter ID" format(uuid)
// @Router /api/newsletter/{newsletterID}/send [post]
func (h newsletterHandler) send() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "newsletterID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid newsletterID"))
			return
		}

		sent, err := h.newsletter.Send(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"status": "success",
			"sent":   sent,
		})
	}
}
