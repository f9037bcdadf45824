package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/descope/go-sdk/descope/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/errs"
	"github.com/sundai-club/sundai-backend/models"
)

type authMiddleware struct {
	responder  Responder
	descope    *client.DescopeClient
	hackerRepo *database.HackerRepo
}

func newAuthMiddleware(projectID string, hackerRepo *database.HackerRepo) (authMiddleware, error) {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()

	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return authMiddleware{}, err
	}

	return authMiddleware{
		responder:  NewResponder(logger),
		descope:    descopeClient,
		hackerRepo: hackerRepo,
	}, nil
}

// authenticate validates the Descope session token and resolves it to
// a local hacker profile, provisioning one on first login.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		sessionToken := strings.TrimPrefix(authHeader, "Bearer ")
		if sessionToken == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		ok, token, err := m.descope.Auth.ValidateSessionWithToken(r.Context(), sessionToken)
		if err != nil || !ok {
			m.responder.WriteError(w, errs.NewInvalidTokenError(err))
			return
		}

		hacker, err := m.hackerRepo.FindByDescopeID(token.ID)
		if err != nil {
			m.responder.WriteError(w, wrapDatabaseError("find", "hacker", err))
			return
		}
		if hacker == nil {
			hacker, err = m.provision(token.ID, token.Claims)
			if err != nil {
				m.responder.WriteError(w, wrapDatabaseError("create", "hacker", err))
				return
			}
		}

		updatedCtx := ctxWithHacker(r.Context(), hacker)
		next.ServeHTTP(w, r.WithContext(updatedCtx))
	})
}

// provision creates a minimal profile from the identity provider's
// claims on a hacker's first authenticated request.
func (m authMiddleware) provision(descopeID string, claims map[string]any) (*models.Hacker, error) {
	hacker := &models.Hacker{
		DescopeID:  descopeID,
		Subscribed: true,
	}
	if email, ok := claims["email"].(string); ok {
		hacker.Email = email
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		hacker.Name = name
	} else {
		hacker.Name = hacker.Email
	}
	if err := m.hackerRepo.Add(hacker); err != nil {
		return nil, err
	}
	return hacker, nil
}

// requireAdmin gates admin-only mutations. Must run after authenticate.
func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hacker, err := ctxGetHacker(r.Context())
		if err != nil {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if !hacker.IsAdmin() {
			m.responder.WriteError(w, errs.NewInsufficientRoleError(string(models.RoleAdmin)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		// Color-code based on HTTP status codes
		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
