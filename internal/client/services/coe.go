package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// Default history page used by the COE page.
const (
	DefaultHistorySkip  = 0
	DefaultHistoryLimit = 50
)

// COEService uploads COE CSV exports and manages stored analyses.
type COEService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*models.COEAnalysisResult, error)
	UploadFile(ctx context.Context, path string) (*models.COEAnalysisResult, error)
	Results(ctx context.Context, id int) (*models.COEAnalysisResult, error)
	History(ctx context.Context, skip, limit int) ([]models.COEAnalysisRecord, error)
	Delete(ctx context.Context, id int) error
}

type coeService struct {
	api API
}

func NewCOEService(api API) COEService {
	return &coeService{api: api}
}

func coeResultsPath(id int) string {
	return "/api/coe/results/" + strconv.Itoa(id)
}

// Upload sends r as the multipart field "file".
func (s *coeService) Upload(ctx context.Context, filename string, r io.Reader) (*models.COEAnalysisResult, error) {
	var out models.COEAnalysisResult
	if err := s.api.PostMultipart(ctx, "/api/coe/upload", "file", filename, r, &out); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &out, nil
}

func (s *coeService) UploadFile(ctx context.Context, path string) (*models.COEAnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Upload(ctx, filepath.Base(path), f)
}

func (s *coeService) Results(ctx context.Context, id int) (*models.COEAnalysisResult, error) {
	var out models.COEAnalysisResult
	if err := s.api.GetJSON(ctx, coeResultsPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("coe results %d: %w", id, err)
	}
	return &out, nil
}

func (s *coeService) History(ctx context.Context, skip, limit int) ([]models.COEAnalysisRecord, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []models.COEAnalysisRecord
	if err := s.api.GetJSON(ctx, "/api/coe/history", q, &out); err != nil {
		return nil, fmt.Errorf("coe history: %w", err)
	}
	return out, nil
}

func (s *coeService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, coeResultsPath(id)); err != nil {
		return fmt.Errorf("delete coe analysis %d: %w", id, err)
	}
	return nil
}
