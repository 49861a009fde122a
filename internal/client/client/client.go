package client

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Client is the transport contract of the remote diary service.
//
// Diary calls take the bearer token explicitly: the client never owns
// session state, it only forwards what the caller hands it.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	Register(ctx context.Context, profile models.Profile) (*models.RegisterResult, error)

	ListDiaries(ctx context.Context, token string, authorID int64) ([]models.Diary, error)
	SearchDiaries(ctx context.Context, token string, filter models.SearchFilter) ([]models.Diary, error)
	CreateDiary(ctx context.Context, token string, authorID int64, in models.DiaryInput) (*models.Diary, error)
	UpdateDiary(ctx context.Context, token string, id int64, patch models.DiaryPatch) (*models.Diary, error)
	DeleteDiary(ctx context.Context, token string, id int64) error
}
