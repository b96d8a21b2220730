package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/dmitrijs2005/bimod/internal/devserver/reports"
	"github.com/gorilla/mux"
)

const reportNotFound = "Report not found"

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// paging reads skip and limit. Bad values answer 422 and return ok=false.
func (s *Server) paging(w http.ResponseWriter, r *http.Request, defLimit int) (skip, limit int, ok bool) {
	limit = defLimit
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"skip", &skip}, {"limit", &limit}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			s.invalid(w, r, []FieldError{{
				Loc:  []string{"query", p.name},
				Msg:  "Input should be a valid integer",
				Type: "int_parsing",
			}})
			return 0, 0, false
		}
		*p.dst = n
	}
	return skip, limit, true
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := s.paging(w, r, reports.DefaultLimit)
	if !ok {
		return
	}
	out, err := s.reports.List(r.Context(), userFrom(r.Context()).ID, skip, limit)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, out)
}

func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInput
	if !s.decode(w, r, &in) {
		return
	}
	rep, err := s.reports.Create(r.Context(), userFrom(r.Context()).ID, in)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	s.ok(w, r, http.StatusCreated, rep)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.Get(r.Context(), userFrom(r.Context()).ID, pathID(r))
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, rep)
}

func (s *Server) updateReport(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInput
	if !s.decode(w, r, &in) {
		return
	}
	rep, err := s.reports.Update(r.Context(), userFrom(r.Context()).ID, pathID(r), in)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, rep)
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.reports.Delete(r.Context(), userFrom(r.Context()).ID, pathID(r)); err != nil {
		s.reportError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) consolidate(w http.ResponseWriter, r *http.Request) {
	res, err := s.reports.Consolidate(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, res)
}

func (s *Server) reportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, r, http.StatusNotFound, reportNotFound)
	case errors.Is(err, common.ErrorValidation):
		s.invalid(w, r, []FieldError{missing("name")})
	default:
		s.internal(w, r, err)
	}
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context()).ID
	n, err := s.coe.Count(r.Context(), owner)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	st, err := s.reports.Stats(r.Context(), owner, n)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, st)
}
