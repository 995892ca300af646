package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/aideasy/internal/client/models"
)

// jobFilter reads teamId, status, from and to. Times are RFC 3339.
func jobFilter(r *http.Request) (models.JobFilter, error) {
	q := r.URL.Query()
	f := models.JobFilter{TeamID: q.Get("teamId")}

	if v := q.Get("status"); v != "" {
		st, err := models.ParseJobStatus(v)
		if err != nil {
			return f, ErrBadInput
		}
		f.Status = st
	}
	for name, dst := range map[string]*time.Time{"from": &f.From, "to": &f.To} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, ErrBadInput
		}
		*dst = t
	}
	return f, nil
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	f, err := jobFilter(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Jobs(f))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.store.Job(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var in models.JobInput
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	j, err := s.store.CreateJob(in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, j)
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var in models.JobInput
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	j, err := s.store.UpdateJob(chi.URLParam(r, "id"), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteJob(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listJobTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.JobTypes())
}

func (s *Server) listTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Teams())
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Team(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	var in models.TeamInput
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	t, err := s.store.CreateTeam(in, s.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTeam(w http.ResponseWriter, r *http.Request) {
	var in models.TeamInput
	if err := decodeBody(r, &in); err != nil {
		writeStoreError(w, err)
		return
	}
	t, err := s.store.UpdateTeam(chi.URLParam(r, "id"), in, s.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTeam(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Clients())
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Client(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
