package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophdiary/internal/client/client"
	"github.com/dmitrijs2005/gophdiary/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, logging.Discard()), db
}

var testUser = models.User{ID: 2, Name: "Test", Email: "user", Age: 30, Role: models.RoleUser}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	require.NoError(t, s.Save(ctx, "t1", testUser))

	rec, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", rec.Token)
	assert.Equal(t, testUser, rec.User)
	assert.True(t, s.HasToken(ctx))
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	require.NoError(t, s.Save(ctx, "t1", testUser))
	admin := models.User{ID: 1, Name: "Admin", Email: "admin", Role: models.RoleAdmin}
	require.NoError(t, s.Save(ctx, "t2", admin))

	rec, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "t2", rec.Token)
	assert.Equal(t, admin, rec.User)
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	require.ErrorIs(t, s.Save(ctx, "", testUser), ErrEmptyToken)
	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _ := setupStore(t)

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.False(t, s.HasToken(context.Background()))
}

func TestStore_LoadNeedsBothKeys(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, TokenKey, []byte("t1")))
	_, ok := s.Load(ctx)
	assert.False(t, ok)
	assert.True(t, s.HasToken(ctx))

	require.NoError(t, repo.Delete(ctx, TokenKey))
	require.NoError(t, repo.Set(ctx, UserKey, []byte(`{"id":2}`)))
	_, ok = s.Load(ctx)
	assert.False(t, ok)
}

func TestStore_MalformedUserIsAbsence(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, TokenKey, []byte("t1")))
	require.NoError(t, repo.Set(ctx, UserKey, []byte(`{not json`)))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

func TestStore_NullUserIsAbsence(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, TokenKey, []byte("t1")))
	require.NoError(t, repo.Set(ctx, UserKey, []byte(`null`)))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

func TestDecodeUser_SerializationError(t *testing.T) {
	for _, raw := range []string{`[]`, `null`, `{}`, `{"id":0,"name":"x"}`} {
		_, err := decodeUser([]byte(raw))
		require.ErrorIs(t, err, ErrSerialization, raw)
	}

	u, err := decodeUser([]byte(`{"id":2,"name":"Test"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	require.NoError(t, s.Save(ctx, "t1", testUser))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	assert.False(t, s.HasToken(ctx))
}

func TestStore_ReadFailureIsAbsence(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	require.NoError(t, s.Save(ctx, "t1", testUser))
	require.NoError(t, db.Close())

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	assert.False(t, s.HasToken(ctx))
	assert.Error(t, s.Save(ctx, "t2", testUser))
}

func TestStore_SaveRollsBackWhenUserWriteFails(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)
	require.NoError(t, s.Save(ctx, "t1", testUser))

	_, err := db.ExecContext(ctx, `
		CREATE TRIGGER reject_user_update BEFORE UPDATE ON metadata
		WHEN NEW.key = 'user'
		BEGIN SELECT RAISE(ABORT, 'user write rejected'); END`)
	require.NoError(t, err)

	admin := models.User{ID: 1, Name: "Admin", Email: "admin", Role: models.RoleAdmin}
	require.Error(t, s.Save(ctx, "t2", admin))

	rec, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", rec.Token)
	assert.Equal(t, testUser, rec.User)
}

func TestStore_SaveRollsBackOnFreshStore(t *testing.T) {
	ctx := context.Background()
	s, db := setupStore(t)

	_, err := db.ExecContext(ctx, `
		CREATE TRIGGER reject_user_insert BEFORE INSERT ON metadata
		WHEN NEW.key = 'user'
		BEGIN SELECT RAISE(ABORT, 'user write rejected'); END`)
	require.NoError(t, err)

	require.Error(t, s.Save(ctx, "t1", testUser))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	assert.False(t, s.HasToken(ctx))
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, logging.Discard()), mock
}

func expectCommittedSave(mock sqlmock.Sqlmock, token string) {
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(TokenKey, []byte(token)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(UserKey, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestStore_SaveSecondWriteFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(TokenKey, []byte("t1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(UserKey, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.Save(context.Background(), "t1", testUser)
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveReadBackMismatch(t *testing.T) {
	s, mock := newMockStore(t)

	expectCommittedSave(mock, "t1")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs(TokenKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("stale")))

	err := s.Save(context.Background(), "t1", testUser)
	require.ErrorIs(t, err, ErrWriteVerification)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveReadBackFailure(t *testing.T) {
	s, mock := newMockStore(t)

	expectCommittedSave(mock, "t1")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs(TokenKey).
		WillReturnError(errors.New("io error"))

	err := s.Save(context.Background(), "t1", testUser)
	require.ErrorIs(t, err, ErrWriteVerification)
	require.ErrorContains(t, err, "io error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveReadBackMissing(t *testing.T) {
	s, mock := newMockStore(t)

	expectCommittedSave(mock, "t1")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs(TokenKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	require.ErrorIs(t, s.Save(context.Background(), "t1", testUser), ErrWriteVerification)
	require.NoError(t, mock.ExpectationsWereMet())
}
