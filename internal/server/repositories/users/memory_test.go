package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	a, err := r.Create(ctx, &Account{User: models.User{Name: "Ann", Email: "Ann@Example.org"}, PasswordHash: []byte("h")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	b, err := r.Create(ctx, &Account{User: models.User{Email: "bob@example.org"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.ID)

	got, err := r.GetByEmail(ctx, " ann@example.org ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	got, err = r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.org", got.Email)
}

func TestInMemoryRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.Create(ctx, &Account{User: models.User{Email: "a@b.c"}})
	require.NoError(t, err)
	_, err = r.Create(ctx, &Account{User: models.User{Email: "A@B.C"}})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestInMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.GetByEmail(ctx, "none")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByID(ctx, 7)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	a, err := r.Create(ctx, &Account{User: models.User{Name: "Ann", Email: "a@b.c"}})
	require.NoError(t, err)
	a.Name = "changed"

	got, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
}
