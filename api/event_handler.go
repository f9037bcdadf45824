package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/events"
	"github.com/sundai-club/sundai-backend/models"
)

type eventHandler struct {
	responder Responder
	logger    zerolog.Logger

	eventRepo *database.EventRepo
}

func newEventHandler(eventRepo *database.EventRepo) eventHandler {
	logger := log.With().Str("handlerName", "eventHandler").Logger()

	return eventHandler{
		responder: NewResponder(logger),
		logger:    logger,
		eventRepo: eventRepo,
	}
}

// listEvents returns pitch events, soonest first. Pass upcoming=true
// to hide events that have already ended.
// @Summary List pitch events
// @Tags Events
// @Produce json
// @Param upcoming query bool false "Only events that have not ended"
// @Success 200 {array} models.PitchEvent
// @Router /api/events [get]
func (h eventHandler) listEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var after *time.Time
		if r.URL.Query().Get("upcoming") == "true" {
			now := time.Now()
			after = &now
		}

		evts, err := h.eventRepo.FindAll(after)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "events", err))
			return
		}

		h.responder.WriteJSON(w, evts)
	}
}

// getEvent returns one event with its MCs and ordered queue.
// @Summary Get pitch event
// @Tags Events
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Success 200 {object} models.PitchEvent
// @Failure 404 {object} ErrorResponse
// @Router /api/events/{eventID} [get]
func (h eventHandler) getEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt, err := h.loadEvent(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, evt)
	}
}

// getQueue returns the event's queue entries in presentation order.
// @Summary Get event queue
// @Tags Events
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Success 200 {array} models.EventProject
// @Router /api/events/{eventID}/queue [get]
func (h eventHandler) getQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := parseEventID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entries, err := h.eventRepo.Queue(eventID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "queue", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}

// QueueSubmission asks to add a project to an event's queue.
type QueueSubmission struct {
	ProjectID uuid.UUID `json:"project_id"`
}

// submitToQueue appends a project at the end of the queue as QUEUED.
// Resubmitting the same project to the same event is a conflict.
// @Summary Submit project to queue
// @Tags Events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Success 201 {object} models.EventProject
// @Failure 409 {object} ErrorResponse
// @Router /api/events/{eventID}/queue [post]
func (h eventHandler) submitToQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := parseEventID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req QueueSubmission
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("queue submission"))
			return
		}
		if req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingFieldError("project_id"))
			return
		}

		entry := models.EventProject{
			EventID:   eventID,
			ProjectID: req.ProjectID,
			Status:    models.QueueQueued,
		}
		if err := h.eventRepo.AddQueueEntry(&entry); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "queue entry", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, entry)
	}
}

// ReorderRequest moves one queue entry one step in either direction.
type ReorderRequest struct {
	EntryID   uuid.UUID `json:"entry_id"`
	Direction string    `json:"direction"`
}

// reorderQueue swaps a movable entry with its nearest movable neighbor
// in the requested direction. Fixed entries (CURRENT, DONE, SKIPPED)
// are scanned past and keep their positions. MCs and admins may always
// reorder; everyone else only when the event allows audience reorder.
// @Summary Reorder queue entry
// @Tags Events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/events/{eventID}/queue/reorder [post]
func (h eventHandler) reorderQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt, err := h.loadEvent(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if !evt.AudienceReorder && !canControl(*evt, *hacker) {
			h.responder.WriteError(w, errs.NewForbiddenError("reordering this queue is limited to MCs and admins"))
			return
		}

		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("reorder request"))
			return
		}
		if req.EntryID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingFieldError("entry_id"))
			return
		}

		var dir events.Direction
		switch req.Direction {
		case "up":
			dir = events.MoveUp
		case "down":
			dir = events.MoveDown
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("direction", "must be up or down"))
			return
		}

		swap, err := events.PlanReorder(evt.Queue, req.EntryID, dir)
		if err != nil {
			h.responder.WriteError(w, queueError(err))
			return
		}

		if err := h.eventRepo.ApplySwap(swap); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "queue", err))
			return
		}

		entries, err := h.eventRepo.Queue(evt.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "queue", err))
			return
		}
		h.responder.WriteJSON(w, entries)
	}
}

// advance finishes the current presentation and promotes the next
// entry, approved entries first.
// @Summary Advance presentation
// @Tags Events
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/events/{eventID}/advance [post]
func (h eventHandler) advance() http.HandlerFunc {
	return h.transition(events.PlanAdvance)
}

// previous steps back: the current presenter returns to APPROVED and
// the most recently finished entry presents again.
// @Summary Step presentation back
// @Tags Events
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/events/{eventID}/previous [post]
func (h eventHandler) previous() http.HandlerFunc {
	return h.transition(events.PlanPrevious)
}

func (h eventHandler) transition(plan func([]models.EventProject) ([]events.Transition, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt, err := h.loadEvent(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireControl(r, *evt); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		transitions, err := plan(evt.Queue)
		if err != nil {
			h.responder.WriteError(w, queueError(err))
			return
		}

		if err := h.eventRepo.ApplyTransitions(transitions); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "queue", err))
			return
		}

		entries, err := h.eventRepo.Queue(evt.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "queue", err))
			return
		}
		h.responder.WriteJSON(w, entries)
	}
}

// EntryStatusRequest sets a queue entry's status directly.
type EntryStatusRequest struct {
	Status models.QueueStatus `json:"status"`
}

// updateEntryStatus approves or skips a queue entry. CURRENT and DONE
// are reached through advance/previous only, never set directly.
// @Summary Update queue entry status
// @Tags Events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Param entryID path string true "Queue entry ID" format(uuid)
// @Failure 403 {object} ErrorResponse
// @Router /api/events/{eventID}/queue/{entryID} [patch]
func (h eventHandler) updateEntryStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt, err := h.loadEvent(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireControl(r, *evt); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid entryID"))
			return
		}

		var req EntryStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("status request"))
			return
		}

		switch req.Status {
		case models.QueueQueued, models.QueueApproved, models.QueueSkipped:
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be QUEUED, APPROVED or SKIPPED"))
			return
		}

		found := false
		for _, entry := range evt.Queue {
			if entry.ID == entryID {
				found = true
				break
			}
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("queue entry not found"))
			return
		}

		if err := h.eventRepo.UpdateEntryStatus(entryID, req.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "queue entry", err))
			return
		}

		entries, err := h.eventRepo.Queue(evt.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "queue", err))
			return
		}
		h.responder.WriteJSON(w, entries)
	}
}

// createEvent schedules a new pitch event.
// @Summary Create pitch event
// @Tags Events
// @Accept json
// @Produce json
// @Success 201 {object} models.PitchEvent
// @Router /api/events [post]
func (h eventHandler) createEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var evt models.PitchEvent
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			h.responder.WriteError(w, errs.Malformed("event"))
			return
		}

		if evt.Title == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("title"))
			return
		}
		if evt.StartTime.IsZero() || evt.EndTime.IsZero() {
			h.responder.WriteError(w, errs.NewMissingFieldError("start_time"))
			return
		}
		if !evt.EndTime.After(evt.StartTime) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("end_time", "must be after start_time"))
			return
		}

		evt.ID = uuid.Nil
		if err := h.eventRepo.Add(&evt); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "event", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, evt)
	}
}

// updateEvent edits an event's details, MCs and audience-reorder flag.
// @Summary Update pitch event
// @Tags Events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID" format(uuid)
// @Success 200 {object} models.PitchEvent
// @Router /api/events/{eventID} [patch]
func (h eventHandler) updateEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt, err := h.loadEvent(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var update models.PitchEvent
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.responder.WriteError(w, errs.Malformed("event"))
			return
		}

		update.ID = evt.ID
		update.CreatedAt = evt.CreatedAt
		if update.Title == "" {
			update.Title = evt.Title
		}
		if update.StartTime.IsZero() {
			update.StartTime = evt.StartTime
		}
		if update.EndTime.IsZero() {
			update.EndTime = evt.EndTime
		}
		// The queue is managed through its own endpoints.
		update.Queue = nil

		if err := h.eventRepo.Update(&update); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "event", err))
			return
		}

		updated, err := h.eventRepo.FindByID(evt.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "event", err))
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

// loadEvent parses the eventID path param and fetches the event with
// its MCs and queue.
func (h eventHandler) loadEvent(r *http.Request) (*models.PitchEvent, error) {
	eventID, err := parseEventID(r)
	if err != nil {
		return nil, err
	}

	evt, err := h.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, wrapDatabaseError("find", "event", err)
	}
	if evt == nil {
		return nil, errs.NewNotFoundError("event not found")
	}
	return evt, nil
}

// requireControl rejects callers who are neither an MC of the event
// nor an admin.
func (h eventHandler) requireControl(r *http.Request, evt models.PitchEvent) error {
	hacker, err := ctxGetHacker(r.Context())
	if err != nil {
		return errs.Unauthorized
	}
	if !canControl(evt, *hacker) {
		return errs.NewForbiddenError("queue control is limited to MCs and admins")
	}
	return nil
}

func canControl(evt models.PitchEvent, hacker models.Hacker) bool {
	if hacker.IsAdmin() {
		return true
	}
	for _, mc := range evt.MCs {
		if mc.ID == hacker.ID {
			return true
		}
	}
	return false
}

// queueError maps the queue planner's sentinel errors to API errors.
func queueError(err error) error {
	switch {
	case errors.Is(err, events.ErrEntryNotFound):
		return errs.NewNotFoundError("queue entry not found")
	case errors.Is(err, events.ErrEntryNotMovable),
		errors.Is(err, events.ErrNoSwapTarget),
		errors.Is(err, events.ErrNoCurrentEntry),
		errors.Is(err, events.ErrQueueExhausted):
		return errs.NewApiErr(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

func parseEventID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid eventID")
	}
	return id, nil
}
