package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	ListByPool(ctx context.Context, poolID int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
}

type memoryTeamRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]models.Team
}

func NewTeamRepository() TeamRepository {
	return &memoryTeamRepository{
		nextID: 1,
		items:  make(map[int]models.Team),
	}
}

func (r *memoryTeamRepository) Create(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if team.ID == 0 {
		team.ID = r.nextID
		r.nextID++
	} else if team.ID >= r.nextID {
		r.nextID = team.ID + 1
	}
	r.items[team.ID] = *team
	return nil
}

func (r *memoryTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return &stored, nil
}

func (r *memoryTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(t models.Team) bool { return t.TournamentID == tournamentID }), nil
}

func (r *memoryTeamRepository) ListByPool(ctx context.Context, poolID int) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(t models.Team) bool { return t.PoolID != nil && *t.PoolID == poolID }), nil
}

func (r *memoryTeamRepository) Update(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[team.ID]; !ok {
		return ErrTeamNotFound
	}
	r.items[team.ID] = *team
	return nil
}

// collect filters the store into an ID-ordered slice. Callers hold the lock.
func (r *memoryTeamRepository) collect(keep func(models.Team) bool) []models.Team {
	out := make([]models.Team, 0, len(r.items))
	for _, t := range r.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
