package coe

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// Analysis is a stored COE upload together with its full result.
type Analysis struct {
	ID        int
	Owner     int
	Filename  string
	CreatedAt time.Time
	Result    models.COEAnalysisResult
}

type Repository interface {
	Create(ctx context.Context, a *Analysis) (*Analysis, error)
	Get(ctx context.Context, owner, id int) (*Analysis, error)
	// List returns the owner's analyses, newest first.
	List(ctx context.Context, owner, skip, limit int) ([]Analysis, error)
	Count(ctx context.Context, owner int) (int, error)
	Delete(ctx context.Context, owner, id int) error
}
