package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

type SQLService interface {
	Analyze(ctx context.Context, query string) (*models.SQLAnalysis, error)
	Compare(ctx context.Context, original, migrated string) (*models.SQLComparison, error)
}

type sqlService struct {
	api API
}

func NewSQLService(api API) SQLService {
	return &sqlService{api: api}
}

func (s *sqlService) Analyze(ctx context.Context, query string) (*models.SQLAnalysis, error) {
	var out models.SQLAnalysis
	if err := s.api.PostJSON(ctx, "/api/sql/analyze", models.SQLAnalyzeRequest{SQLQuery: query}, &out); err != nil {
		return nil, fmt.Errorf("analyze sql: %w", err)
	}
	return &out, nil
}

func (s *sqlService) Compare(ctx context.Context, original, migrated string) (*models.SQLComparison, error) {
	var out models.SQLComparison
	req := models.SQLCompareRequest{SQL1: original, SQL2: migrated}
	if err := s.api.PostJSON(ctx, "/api/sql/compare", req, &out); err != nil {
		return nil, fmt.Errorf("compare sql: %w", err)
	}
	return &out, nil
}
