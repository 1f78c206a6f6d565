package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

var ErrPoolNotFound = errors.New("pool not found")

type PoolRepository interface {
	Create(ctx context.Context, pool *models.Pool) error
	GetByID(ctx context.Context, id int) (*models.Pool, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Pool, error)
}

type memoryPoolRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]models.Pool
}

func NewPoolRepository() PoolRepository {
	return &memoryPoolRepository{
		nextID: 1,
		items:  make(map[int]models.Pool),
	}
}

func (r *memoryPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pool.ID == 0 {
		pool.ID = r.nextID
		r.nextID++
	} else if pool.ID >= r.nextID {
		r.nextID = pool.ID + 1
	}
	r.items[pool.ID] = *pool
	return nil
}

func (r *memoryPoolRepository) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return &stored, nil
}

func (r *memoryPoolRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Pool, 0, len(r.items))
	for _, p := range r.items {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
