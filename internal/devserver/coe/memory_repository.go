package coe

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bimod/internal/common"
)

var _ Repository = (*InMemoryRepository)(nil)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]Analysis
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID: 1,
		items:  make(map[int]Analysis),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryRepository) Create(_ context.Context, a *Analysis) (*Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := *a
	rec.ID = r.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}
	r.nextID++
	r.items[rec.ID] = rec
	return &rec, nil
}

func (r *InMemoryRepository) Get(_ context.Context, owner, id int) (*Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok || rec.Owner != owner {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (r *InMemoryRepository) List(_ context.Context, owner, skip, limit int) ([]Analysis, error) {
	r.mu.RLock()
	all := make([]Analysis, 0, len(r.items))
	for _, rec := range r.items {
		if rec.Owner == owner {
			all = append(all, rec)
		}
	}
	r.mu.RUnlock()

	// ties on the timestamp fall back to the id so later uploads still sort first
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if skip >= len(all) {
		return []Analysis{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *InMemoryRepository) Count(_ context.Context, owner int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.items {
		if rec.Owner == owner {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, owner, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok || rec.Owner != owner {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}
