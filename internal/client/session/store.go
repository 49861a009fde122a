// Package session persists the authenticated session (bearer token and
// user record) in the local SQLite metadata table so it survives restarts.
package session

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophdiary/internal/dbx"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

var (
	ErrEmptyToken        = errors.New("empty token")
	ErrWriteVerification = errors.New("session write could not be verified")
	ErrSerialization     = errors.New("malformed persisted user record")
)

// Store reads and writes the persisted session. The token and the user
// record are always written and removed together.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Save writes the token and the JSON-encoded user in one transaction and
// reads the token back once committed.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, userJSON)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	stored, err := s.repo(s.db).Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteVerification, err)
	}
	if !bytes.Equal(stored, []byte(token)) {
		return ErrWriteVerification
	}
	return nil
}

// Load returns the persisted session. ok is false when either key is
// missing, the user record does not decode, or storage cannot be read.
func (s *Store) Load(ctx context.Context) (rec models.SessionRecord, ok bool) {
	repo := s.repo(s.db)

	token, err := repo.Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "reading persisted token failed", "error", err)
		return models.SessionRecord{}, false
	}
	if len(token) == 0 {
		return models.SessionRecord{}, false
	}

	raw, err := repo.Get(ctx, UserKey)
	if err != nil {
		s.logger.Warn(ctx, "reading persisted user failed", "error", err)
		return models.SessionRecord{}, false
	}
	if len(raw) == 0 {
		return models.SessionRecord{}, false
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.logger.Warn(ctx, "ignoring persisted session", "error", err)
		return models.SessionRecord{}, false
	}

	return models.SessionRecord{Token: string(token), User: user}, true
}

// decodeUser rejects records that do not describe a real user, including
// a JSON null and a user without an id.
func decodeUser(raw []byte) (models.User, error) {
	var u *models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if u == nil || u.ID == 0 {
		return models.User{}, fmt.Errorf("%w: no user id", ErrSerialization)
	}
	return *u, nil
}

// Clear removes both keys. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, TokenKey, UserKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// HasToken reports whether a non-empty token is persisted, regardless of
// the user record.
func (s *Store) HasToken(ctx context.Context) bool {
	token, err := s.repo(s.db).Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "reading persisted token failed", "error", err)
		return false
	}
	return len(token) > 0
}
