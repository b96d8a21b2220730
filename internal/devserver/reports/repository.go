package reports

import (
	"context"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// Repository stores report definitions. Every call is scoped to an owner;
// reports of other users are invisible and reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, owner int, report *models.Report) (*models.Report, error)
	List(ctx context.Context, owner, skip, limit int) ([]models.Report, error)
	Get(ctx context.Context, owner, id int) (*models.Report, error)
	Update(ctx context.Context, owner int, report *models.Report) (*models.Report, error)
	Delete(ctx context.Context, owner, id int) error
}
