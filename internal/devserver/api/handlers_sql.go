package api

import (
	"net/http"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/devserver/analysis"
)

func (s *Server) analyzeSQL(w http.ResponseWriter, r *http.Request) {
	var req models.SQLAnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.ok(w, r, http.StatusOK, analysis.Analyze(req.SQLQuery))
}

func (s *Server) compareSQL(w http.ResponseWriter, r *http.Request) {
	var req models.SQLCompareRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.ok(w, r, http.StatusOK, analysis.Compare(req.SQL1, req.SQL2))
}
