// Package services contains the business logic of the stand-in diary API:
// accounts and tokens in UserService, entries and their visibility rules
// in DiaryService.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/server/auth"
	"github.com/dmitrijs2005/gophdiary/internal/server/config"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophdiary/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	name, email, password string
	role                  models.Role
}

var demoUsers = []demoUser{
	{name: "Administrator", email: "admin", password: "admin", role: models.RoleAdmin},
	{name: "Demo User", email: "user", password: "user", role: models.RoleUser},
}

type UserService struct {
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	hashCost              int
	logger                logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		hashCost:              bcrypt.DefaultCost,
		logger:                logger,
	}
}

// Register validates the profile and creates a USER account. A taken
// email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, p models.Profile) (*models.User, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	switch {
	case p.Name == "":
		return nil, invalid("name is required")
	case p.Email == "":
		return nil, invalid("email is required")
	case p.Password == "":
		return nil, invalid("password is required")
	case p.Age < 1:
		return nil, invalid("age must be a positive number")
	}

	u, err := s.create(ctx, p, models.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and mints a bearer token. Unknown emails
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	account, err := s.repomanager.Users().GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(creds.Password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.User, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &models.AuthResult{Token: token, User: account.User}, nil
}

// SeedDemoUsers creates the demo accounts, skipping those that exist.
func (s *UserService) SeedDemoUsers(ctx context.Context) error {
	for _, d := range demoUsers {
		_, err := s.create(ctx, models.Profile{Name: d.name, Email: d.email, Password: d.password, Age: 30}, d.role)
		if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("seed %s: %w", d.email, err)
		}
	}
	s.logger.Info(ctx, "demo users ready", "count", len(demoUsers))
	return nil
}

func (s *UserService) create(ctx context.Context, p models.Profile, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repomanager.Users().Create(ctx, &users.Account{
		User:         models.User{Name: p.Name, Email: p.Email, Age: p.Age, Role: role},
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return &account.User, nil
}
