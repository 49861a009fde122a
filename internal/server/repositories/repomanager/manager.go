// Package repomanager groups the repositories of the stand-in API behind
// one handle.
package repomanager

import (
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Diaries() diaries.Repository
}

type InMemoryRepositoryManager struct {
	users   *users.InMemoryRepository
	diaries *diaries.InMemoryRepository
}

// NewInMemoryRepositoryManager returns a manager whose repositories live
// for the lifetime of the process.
func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:   users.NewInMemoryRepository(),
		diaries: diaries.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Diaries() diaries.Repository {
	return m.diaries
}
