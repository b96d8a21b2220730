package api

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/dmitrijs2005/bimod/internal/devserver/coe"
)

const analysisNotFound = "Analysis not found"

func (s *Server) uploadCOE(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		s.invalid(w, r, []FieldError{missing("file")})
		return
	}
	defer f.Close()

	res, err := s.coe.Upload(r.Context(), userFrom(r.Context()).ID, hdr.Filename, f)
	var rej *coe.RejectedError
	switch {
	case err == nil:
		s.ok(w, r, http.StatusOK, res)
	case errors.Is(err, coe.ErrNotCSV):
		s.fail(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &rej):
		s.fail(w, r, http.StatusBadRequest, rej.Message)
	default:
		s.internal(w, r, err)
	}
}

func (s *Server) coeHistory(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := s.paging(w, r, coe.DefaultHistoryLimit)
	if !ok {
		return
	}
	out, err := s.coe.History(r.Context(), userFrom(r.Context()).ID, skip, limit)
	if err != nil {
		s.internal(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, out)
}

func (s *Server) coeResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.coe.Result(r.Context(), userFrom(r.Context()).ID, pathID(r))
	switch {
	case err == nil:
		s.ok(w, r, http.StatusOK, res)
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, r, http.StatusNotFound, analysisNotFound)
	default:
		s.internal(w, r, err)
	}
}

func (s *Server) deleteCOE(w http.ResponseWriter, r *http.Request) {
	err := s.coe.Delete(r.Context(), userFrom(r.Context()).ID, pathID(r))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrorNotFound):
		s.fail(w, r, http.StatusNotFound, analysisNotFound)
	default:
		s.internal(w, r, err)
	}
}
