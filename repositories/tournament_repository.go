package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
}

// memoryTournamentRepository keeps tournaments in process memory. The
// interface is the persistence seam; a database-backed implementation
// can replace it without touching the services.
type memoryTournamentRepository struct {
	mu     sync.RWMutex
	nextID int
	items  map[int]models.Tournament
}

func NewTournamentRepository() TournamentRepository {
	return &memoryTournamentRepository{
		nextID: 1,
		items:  make(map[int]models.Tournament),
	}
}

func (r *memoryTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tournament.ID == 0 {
		tournament.ID = r.nextID
		r.nextID++
	} else if tournament.ID >= r.nextID {
		r.nextID = tournament.ID + 1
	}
	if tournament.CreatedAt.IsZero() {
		tournament.CreatedAt = time.Now()
	}
	r.items[tournament.ID] = *tournament
	return nil
}

func (r *memoryTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return &stored, nil
}

func (r *memoryTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[tournament.ID]; !ok {
		return ErrTournamentNotFound
	}
	r.items[tournament.ID] = *tournament
	return nil
}
