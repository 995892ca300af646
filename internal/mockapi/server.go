package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/common"
	"github.com/dmitrijs2005/aideasy/internal/logging"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// Server holds the handlers of the mock API.
type Server struct {
	store    *Store
	sessions *Sessions
	log      logging.Logger
	now      func() time.Time
}

func NewServer(store *Store, sessions *Sessions, log logging.Logger) *Server {
	return &Server{store: store, sessions: sessions, log: log, now: time.Now}
}

// Handler mounts every route under basePath.
func (s *Server) Handler(basePath string) http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route(basePath, func(r chi.Router) {
		r.Get("/health", s.health)
		r.Post(common.SessionsPath, s.login)
		r.Post(common.RefreshPath, s.refresh)

		r.Group(func(r chi.Router) {
			r.Use(s.requireBearer)

			r.Get("/users/me", s.me)
			r.Get("/users", s.listUsers)

			r.Get("/jobs", s.listJobs)
			r.Post("/jobs", s.createJob)
			r.Get("/jobs/{id}", s.getJob)
			r.Put("/jobs/{id}", s.updateJob)
			r.Delete("/jobs/{id}", s.deleteJob)
			r.Get("/job-types", s.listJobTypes)

			r.Get("/teams", s.listTeams)
			r.Post("/teams", s.createTeam)
			r.Get("/teams/{id}", s.getTeam)
			r.Patch("/teams/{id}", s.updateTeam)
			r.Delete("/teams/{id}", s.deleteTeam)

			r.Get("/clients", s.listClients)
			r.Get("/clients/{id}", s.getClient)
		})
	})
	return r
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{StatusCode: status, Message: msg})
}

// writeStoreError maps store sentinels to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadInput, err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(common.RequestIDHeaderName)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, reqID)

		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", reqID,
			"duration", s.now().Sub(start),
		)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		userID, err := s.sessions.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	pair, err := s.sessions.Login(in.Login, in.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pair)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshRequest
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	pair, err := s.sessions.Refresh(in.RefreshToken)
	if err != nil {
		s.log.Info(r.Context(), "refresh rejected", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Users())
}
