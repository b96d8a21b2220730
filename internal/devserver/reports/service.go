package reports

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/dmitrijs2005/bimod/internal/devserver/analysis"
)

const (
	DefaultLimit     = 100
	ConsolidateLimit = 1000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new report. A report with a query but no score is
// scored on the way in.
func (s *Service) Create(ctx context.Context, owner int, in models.ReportInput) (*models.Report, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("name: %w", common.ErrorValidation)
	}
	rep := &models.Report{}
	apply(rep, in)
	analysis.Enrich(rep)

	created, err := s.repo.Create(ctx, owner, rep)
	if err != nil {
		return nil, fmt.Errorf("error creating report: %w", err)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, owner, skip, limit int) ([]models.Report, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.List(ctx, owner, skip, limit)
}

func (s *Service) Get(ctx context.Context, owner, id int) (*models.Report, error) {
	return s.repo.Get(ctx, owner, id)
}

// Update applies the set fields of in; unset fields keep their values.
func (s *Service) Update(ctx context.Context, owner, id int, in models.ReportInput) (*models.Report, error) {
	rep, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("name: %w", common.ErrorValidation)
	}
	apply(rep, in)
	return s.repo.Update(ctx, owner, rep)
}

func (s *Service) Delete(ctx context.Context, owner, id int) error {
	return s.repo.Delete(ctx, owner, id)
}

// Consolidate runs duplicate detection over the owner's reports.
func (s *Service) Consolidate(ctx context.Context, owner int) (models.ConsolidationResult, error) {
	reps, err := s.repo.List(ctx, owner, 0, ConsolidateLimit)
	if err != nil {
		return models.ConsolidationResult{}, err
	}
	return analysis.Consolidate(reps), nil
}

// Stats aggregates the owner's dashboard figures.
func (s *Service) Stats(ctx context.Context, owner, analyses int) (models.DashboardStats, error) {
	reps, err := s.repo.List(ctx, owner, 0, math.MaxInt)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return analysis.Stats(reps, analyses), nil
}

func apply(r *models.Report, in models.ReportInput) {
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.ReportType != nil {
		r.ReportType = in.ReportType
	}
	if in.SQLQuery != nil {
		r.SQLQuery = in.SQLQuery
	}
	if in.ComplexityScore != nil {
		r.ComplexityScore = in.ComplexityScore
	}
	if in.ComplexityCategory != nil {
		r.ComplexityCategory = in.ComplexityCategory
	}
	if in.EstimatedHours != nil {
		r.EstimatedHours = in.EstimatedHours
	}
	if in.SourceSystem != nil {
		r.SourceSystem = in.SourceSystem
	}
	if in.Migrated != nil {
		r.Migrated = *in.Migrated
	}
}
