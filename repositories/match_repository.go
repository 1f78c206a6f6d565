package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/LukasKanopka/GBVGrabBag-sub001/models"
	"github.com/LukasKanopka/GBVGrabBag-sub001/utils"
	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []models.Match) ([]models.Match, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, matchType *models.MatchType) ([]models.Match, error)
	ListByPool(ctx context.Context, poolID int) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	DeleteByTournamentAndType(ctx context.Context, tournamentID int, matchType models.MatchType) (int, error)
}

type memoryMatchRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Match
}

func NewMatchRepository() MatchRepository {
	return &memoryMatchRepository{items: make(map[uuid.UUID]models.Match)}
}

// CreateBatch stores a generated slate in one shot and returns the
// stored rows in schedule order.
func (r *memoryMatchRepository) CreateBatch(ctx context.Context, matches []models.Match) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		r.items[m.ID] = m
		stored = append(stored, m)
	}
	sortMatches(stored)
	return stored, nil
}

func (r *memoryMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return &stored, nil
}

func (r *memoryMatchRepository) ListByTournament(ctx context.Context, tournamentID int, matchType *models.MatchType) ([]models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Match, 0, len(r.items))
	for _, m := range r.items {
		if m.TournamentID != tournamentID {
			continue
		}
		if matchType != nil && m.Type != *matchType {
			continue
		}
		out = append(out, m)
	}
	sortMatches(out)
	return out, nil
}

func (r *memoryMatchRepository) ListByPool(ctx context.Context, poolID int) ([]models.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Match, 0, len(r.items))
	for _, m := range r.items {
		if m.PoolID != nil && *m.PoolID == poolID {
			out = append(out, m)
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *memoryMatchRepository) Update(ctx context.Context, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[match.ID]; !ok {
		return ErrMatchNotFound
	}
	r.items[match.ID] = *match
	return nil
}

// DeleteByTournamentAndType removes a whole phase at once and reports
// how many matches were dropped.
func (r *memoryMatchRepository) DeleteByTournamentAndType(ctx context.Context, tournamentID int, matchType models.MatchType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, m := range r.items {
		if m.TournamentID == tournamentID && m.Type == matchType {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

// sortMatches orders a slate for presentation: pool play first, grouped
// by pool and round, then bracket rounds by position. The match ID is
// the final key so listings are stable.
func sortMatches(matches []models.Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Type != b.Type {
			return a.Type == models.MatchTypePool
		}
		if pa, pb := utils.OrZero(a.PoolID), utils.OrZero(b.PoolID); pa != pb {
			return pa < pb
		}
		if a.RoundNumber != b.RoundNumber {
			return a.RoundNumber < b.RoundNumber
		}
		if a.BracketIndex != b.BracketIndex {
			return a.BracketIndex < b.BracketIndex
		}
		return a.ID.String() < b.ID.String()
	})
}
