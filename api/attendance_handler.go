package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/models"
)

type attendanceHandler struct {
	responder Responder
	logger    zerolog.Logger

	weekRepo *database.WeekRepo
}

func newAttendanceHandler(weekRepo *database.WeekRepo) attendanceHandler {
	logger := log.With().Str("handlerName", "attendanceHandler").Logger()

	return attendanceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		weekRepo:  weekRepo,
	}
}

// listWeeks returns all hack weeks, newest first.
// @Summary List weeks
// @Tags Attendance
// @Produce json
// @Success 200 {array} models.Week
// @Router /api/weeks [get]
func (h attendanceHandler) listWeeks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weeks, err := h.weekRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "weeks", err))
			return
		}
		h.responder.WriteJSON(w, weeks)
	}
}

// CheckInRequest is the optional check-in payload. Status defaults to
// PRESENT when omitted.
type CheckInRequest struct {
	Status models.AttendanceStatus `json:"status"`
}

// checkIn records the caller's attendance for a week. Checking in
// twice updates the existing record instead of duplicating it.
// @Summary Check in to a week
// @Tags Attendance
// @Accept json
// @Produce json
// @Param weekID path string true "Week ID" format(uuid)
// @Success 200 {object} models.AttendanceRecord
// @Router /api/weeks/{weekID}/checkin [post]
func (h attendanceHandler) checkIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		weekID, err := parseWeekID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		week, err := h.weekRepo.FindByID(weekID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "week", err))
			return
		}
		if week == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("week not found"))
			return
		}

		req := CheckInRequest{Status: models.AttendancePresent}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				h.responder.WriteError(w, errs.Malformed("check-in"))
				return
			}
		}

		switch req.Status {
		case models.AttendancePresent, models.AttendanceLate, models.AttendanceAbsent:
		case "":
			req.Status = models.AttendancePresent
		default:
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be PRESENT, LATE or ABSENT"))
			return
		}

		record := models.AttendanceRecord{
			HackerID:    hacker.ID,
			WeekID:      weekID,
			Status:      req.Status,
			CheckedInAt: time.Now(),
		}
		if err := h.weekRepo.UpsertAttendance(&record); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record", "attendance", err))
			return
		}

		h.responder.WriteJSON(w, record)
	}
}

// listAttendance returns every check-in for a week.
// @Summary List attendance for a week
// @Tags Attendance
// @Produce json
// @Param weekID path string true "Week ID" format(uuid)
// @Success 200 {array} models.AttendanceRecord
// @Router /api/weeks/{weekID}/attendance [get]
func (h attendanceHandler) listAttendance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekID, err := parseWeekID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		records, err := h.weekRepo.AttendanceForWeek(weekID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "attendance", err))
			return
		}
		h.responder.WriteJSON(w, records)
	}
}

// createWeek opens a new hack week.
// @Summary Create week
// @Tags Attendance
// @Accept json
// @Produce json
// @Success 201 {object} models.Week
// @Router /api/weeks [post]
func (h attendanceHandler) createWeek() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var week models.Week
		if err := json.NewDecoder(r.Body).Decode(&week); err != nil {
			h.responder.WriteError(w, errs.Malformed("week"))
			return
		}

		if week.Number <= 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("number", "must be a positive integer"))
			return
		}
		if week.StartDate.IsZero() || week.EndDate.IsZero() {
			h.responder.WriteError(w, errs.NewMissingFieldError("start_date"))
			return
		}
		if !week.EndDate.After(week.StartDate) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("end_date", "must be after start_date"))
			return
		}

		week.ID = uuid.Nil
		if err := h.weekRepo.Add(&week); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "week", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, week)
	}
}

func parseWeekID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "weekID"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid weekID")
	}
	return id, nil
}
