package reports

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/common"
)

var _ Repository = (*InMemoryRepository)(nil)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	// ids keeps insertion order for listing.
	ids   []int
	items map[int]models.Report
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, items: make(map[int]models.Report)}
}

func (r *InMemoryRepository) Create(_ context.Context, owner int, report *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := *report
	rep.ID = r.nextID
	rep.CreatedBy = owner
	r.nextID++
	r.items[rep.ID] = rep
	r.ids = append(r.ids, rep.ID)
	return &rep, nil
}

func (r *InMemoryRepository) List(_ context.Context, owner, skip, limit int) ([]models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Report{}
	for _, id := range r.ids {
		rep := r.items[id]
		if rep.CreatedBy != owner {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, rep)
	}
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, owner, id int) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.items[id]
	if !ok || rep.CreatedBy != owner {
		return nil, common.ErrorNotFound
	}
	return &rep, nil
}

func (r *InMemoryRepository) Update(_ context.Context, owner int, report *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[report.ID]
	if !ok || cur.CreatedBy != owner {
		return nil, common.ErrorNotFound
	}
	rep := *report
	rep.CreatedBy = owner
	r.items[rep.ID] = rep
	return &rep, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, owner, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[id]
	if !ok || cur.CreatedBy != owner {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}
