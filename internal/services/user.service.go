package services

import (
	"context"
	"errors"

	"github.com/payformhq/payform/internal/auth"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AccessToken is the result of a successful credential exchange.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type UserService struct {
	userRepo UserRepository
	tokens   *auth.TokenManager
}

func NewUserService(userRepo UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user with a bcrypt-hashed credential. Users are
// immutable after creation, there is no update or delete path.
func (s *UserService) Register(ctx context.Context, p model.RegisterRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: string(hash),
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Authenticate exchanges credentials for a bearer token. Lookup misses and
// wrong passwords are deliberately indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*AccessToken, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AccessToken{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
	}, nil
}

// GetByID resolves a user, mapping repository misses to the service error.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
