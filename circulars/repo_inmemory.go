package circulars

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of Repo
type InMemoryRepo struct {
	mu        sync.RWMutex
	circulars map[int]Circular
	lastID    int
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates an empty repository whose first allocated ID is
// startAfter+1.
func NewInMemoryRepo(startAfter int) *InMemoryRepo {
	return &InMemoryRepo{
		circulars: make(map[int]Circular),
		lastID:    startAfter,
	}
}

func (r *InMemoryRepo) NextID(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	return r.lastID, nil
}

func (r *InMemoryRepo) Put(_ context.Context, circular Circular) error {
	if circular.CircularID <= 0 {
		return fmt.Errorf("circularId must be positive: %w", apperrors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.circulars[circular.CircularID] = circular
	if circular.CircularID > r.lastID {
		r.lastID = circular.CircularID
	}
	return nil
}

func (r *InMemoryRepo) Get(_ context.Context, circularID int) (Circular, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	circular, ok := r.circulars[circularID]
	if !ok {
		return Circular{}, fmt.Errorf("circular %d: %w", circularID, apperrors.ErrNotFound)
	}
	return circular, nil
}

// List returns up to limit circulars, newest first, skipping offset. A zero
// limit returns everything after offset.
func (r *InMemoryRepo) List(_ context.Context, offset, limit int) ([]Circular, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("list offset %d limit %d: %w", offset, limit, apperrors.ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Circular, 0, len(r.circulars))
	for _, c := range r.circulars {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CircularID > list[j].CircularID
	})

	if offset >= len(list) {
		return []Circular{}, nil
	}
	end := len(list)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return list[offset:end], nil
}
