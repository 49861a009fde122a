package users

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/timex"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*Account
	byEmail map[string]int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:  1,
		byID:    make(map[int64]*Account),
		byEmail: make(map[string]int64),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create assigns the id and timestamps and stores a copy of account.
func (r *InMemoryRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(account.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrorAlreadyExists
	}

	a := *account
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = timex.Now()
	a.UpdatedAt = a.CreatedAt

	r.byID[a.ID] = &a
	r.byEmail[key] = a.ID

	out := a
	return &out, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := *r.byID[id]
	return &a, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}
