package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// ReportService manages stored report definitions and runs duplicate
// detection over them.
type ReportService interface {
	List(ctx context.Context, skip, limit int) ([]models.Report, error)
	Get(ctx context.Context, id int) (*models.Report, error)
	Create(ctx context.Context, in models.ReportInput) (*models.Report, error)
	Update(ctx context.Context, id int, in models.ReportInput) (*models.Report, error)
	Delete(ctx context.Context, id int) error
	Consolidate(ctx context.Context) (*models.ConsolidationResult, error)
}

type reportService struct {
	api API
}

func NewReportService(api API) ReportService {
	return &reportService{api: api}
}

func reportPath(id int) string {
	return "/api/reports/" + strconv.Itoa(id)
}

// List pages through reports; a zero limit uses the server default.
func (r *reportService) List(ctx context.Context, skip, limit int) ([]models.Report, error) {
	var q url.Values
	if skip > 0 || limit > 0 {
		q = url.Values{}
		q.Set("skip", strconv.Itoa(skip))
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
	}
	var out []models.Report
	if err := r.api.GetJSON(ctx, "/api/reports/", q, &out); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

func (r *reportService) Get(ctx context.Context, id int) (*models.Report, error) {
	var out models.Report
	if err := r.api.GetJSON(ctx, reportPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return &out, nil
}

func (r *reportService) Create(ctx context.Context, in models.ReportInput) (*models.Report, error) {
	var out models.Report
	if err := r.api.PostJSON(ctx, "/api/reports/", in, &out); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return &out, nil
}

// Update is a partial update; nil fields of in are left as they are.
func (r *reportService) Update(ctx context.Context, id int, in models.ReportInput) (*models.Report, error) {
	var out models.Report
	if err := r.api.PutJSON(ctx, reportPath(id), in, &out); err != nil {
		return nil, fmt.Errorf("update report %d: %w", id, err)
	}
	return &out, nil
}

func (r *reportService) Delete(ctx context.Context, id int) error {
	if err := r.api.Delete(ctx, reportPath(id)); err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	return nil
}

// Consolidate posts with no body; the server works over all of the user's reports.
func (r *reportService) Consolidate(ctx context.Context) (*models.ConsolidationResult, error) {
	var out models.ConsolidationResult
	if err := r.api.PostJSON(ctx, "/api/reports/consolidate", nil, &out); err != nil {
		return nil, fmt.Errorf("consolidate: %w", err)
	}
	return &out, nil
}
