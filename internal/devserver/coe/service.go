// Package coe stores and serves COE export analyses.
package coe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/devserver/analysis"
)

const DefaultHistoryLimit = 50

var ErrNotCSV = errors.New("CSV file required")

// RejectedError carries a message meant for the uploader.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upload analyses a CSV export and stores the result for owner.
func (s *Service) Upload(ctx context.Context, owner int, filename string, r io.Reader) (*models.COEAnalysisResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, ErrNotCSV
	}

	res, err := analysis.ProcessCOE(r)
	if err != nil {
		return nil, &RejectedError{Message: fmt.Sprintf("Failed to process CSV: %v", err)}
	}
	if res.Error != "" {
		return nil, &RejectedError{Message: res.Error}
	}

	rec, err := s.repo.Create(ctx, &Analysis{Owner: owner, Filename: filename, Result: *res})
	if err != nil {
		return nil, fmt.Errorf("error saving analysis: %w", err)
	}

	out := *res
	out.AnalysisID = &rec.ID
	return &out, nil
}

// Result returns a stored analysis with its id, file name and upload time.
func (s *Service) Result(ctx context.Context, owner, id int) (*models.COEAnalysisResult, error) {
	rec, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	out := rec.Result
	out.AnalysisID = &rec.ID
	out.Filename = rec.Filename
	created := timestamp(rec.CreatedAt)
	out.CreatedAt = &created
	return &out, nil
}

func (s *Service) History(ctx context.Context, owner, skip, limit int) ([]models.COEAnalysisRecord, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.repo.List(ctx, owner, skip, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.COEAnalysisRecord, 0, len(recs))
	for _, rec := range recs {
		r := rec.Result
		created := timestamp(rec.CreatedAt)
		out = append(out, models.COEAnalysisRecord{
			ID:                  rec.ID,
			Filename:            rec.Filename,
			ReportCount:         &r.ReportCount,
			DuplicateCount:      &r.DuplicateCount,
			UniqueCount:         &r.UniqueCount,
			AvgComplexity:       &r.AvgComplexity,
			TotalEstimatedHours: &r.TotalEstimatedHours,
			CreatedAt:           &created,
		})
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, owner, id int) error {
	return s.repo.Delete(ctx, owner, id)
}

func (s *Service) Count(ctx context.Context, owner int) (int, error) {
	return s.repo.Count(ctx, owner)
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}
