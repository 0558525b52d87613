package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

// Store is the user-store capability contract the identity manager works
// against: identifier, username, email and password-hash access plus CRUD
// with structured results.
type Store interface {
	GetUserID(ctx context.Context, user *domain.User) (string, error)
	GetUserName(ctx context.Context, user *domain.User) (string, error)
	SetUserName(ctx context.Context, user *domain.User, userName string) error
	GetNormalizedUserName(ctx context.Context, user *domain.User) (string, error)
	SetNormalizedUserName(ctx context.Context, user *domain.User, normalizedName string) error

	GetEmail(ctx context.Context, user *domain.User) (string, error)
	SetEmail(ctx context.Context, user *domain.User, email string) error
	GetNormalizedEmail(ctx context.Context, user *domain.User) (string, error)
	SetNormalizedEmail(ctx context.Context, user *domain.User, normalizedEmail string) error
	GetEmailConfirmed(ctx context.Context, user *domain.User) (bool, error)
	SetEmailConfirmed(ctx context.Context, user *domain.User, confirmed bool) error

	GetPasswordHash(ctx context.Context, user *domain.User) (string, error)
	SetPasswordHash(ctx context.Context, user *domain.User, passwordHash string) error
	HasPassword(ctx context.Context, user *domain.User) (bool, error)

	Create(ctx context.Context, user *domain.User) Result
	Update(ctx context.Context, user *domain.User) Result
	Delete(ctx context.Context, user *domain.User) Result

	FindByID(ctx context.Context, userID string) (*domain.User, error)
	FindByName(ctx context.Context, normalizedUserName string) (*domain.User, error)
	FindByEmail(ctx context.Context, normalizedEmail string) (*domain.User, error)
}

// UserStore adapts UserRepository to the Store contract. Domain entities
// never implement the contract themselves.
type UserStore struct {
	users repository.UserRepository
}

// NewUserStore constructs the adapter.
func NewUserStore(users repository.UserRepository) *UserStore {
	return &UserStore{users: users}
}

func (s *UserStore) GetUserID(_ context.Context, user *domain.User) (string, error) {
	return user.ID().String(), nil
}

func (s *UserStore) GetUserName(_ context.Context, user *domain.User) (string, error) {
	return user.UserName(), nil
}

func (s *UserStore) SetUserName(_ context.Context, user *domain.User, userName string) error {
	user.UpdateUserName(userName)
	return nil
}

func (s *UserStore) GetNormalizedUserName(_ context.Context, user *domain.User) (string, error) {
	return user.NormalizedUserName(), nil
}

func (s *UserStore) SetNormalizedUserName(_ context.Context, user *domain.User, normalizedName string) error {
	user.UpdateNormalizedUserName(normalizedName)
	return nil
}

func (s *UserStore) GetEmail(_ context.Context, user *domain.User) (string, error) {
	return user.MailAddress(), nil
}

func (s *UserStore) SetEmail(_ context.Context, user *domain.User, email string) error {
	user.UpdateMailAddress(email)
	return nil
}

func (s *UserStore) GetNormalizedEmail(_ context.Context, user *domain.User) (string, error) {
	return user.NormalizedMailAddress(), nil
}

func (s *UserStore) SetNormalizedEmail(_ context.Context, user *domain.User, normalizedEmail string) error {
	user.UpdateNormalizedMailAddress(normalizedEmail)
	return nil
}

// GetEmailConfirmed always reports true; confirmation is not modeled.
func (s *UserStore) GetEmailConfirmed(_ context.Context, _ *domain.User) (bool, error) {
	return true, nil
}

func (s *UserStore) SetEmailConfirmed(_ context.Context, _ *domain.User, _ bool) error {
	return nil
}

func (s *UserStore) GetPasswordHash(_ context.Context, user *domain.User) (string, error) {
	return user.PasswordHash(), nil
}

func (s *UserStore) SetPasswordHash(_ context.Context, user *domain.User, passwordHash string) error {
	user.UpdatePasswordHash(passwordHash)
	return nil
}

func (s *UserStore) HasPassword(_ context.Context, user *domain.User) (bool, error) {
	return strings.TrimSpace(user.PasswordHash()) != "", nil
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) Result {
	if err := s.users.Create(ctx, user); err != nil {
		return Failed(ResultError{Code: ErrCodeUserCreateFailed, Description: err.Error()})
	}
	return Success
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) Result {
	if err := s.users.Update(ctx, user); err != nil {
		return Failed(ResultError{Code: ErrCodeUserUpdateFailed, Description: err.Error()})
	}
	return Success
}

func (s *UserStore) Delete(ctx context.Context, user *domain.User) Result {
	if err := s.users.Delete(ctx, user.ID()); err != nil {
		return Failed(ResultError{Code: ErrCodeUserDeleteFailed, Description: err.Error()})
	}
	return Success
}

// FindByID treats an unparsable id as not-found rather than an error.
func (s *UserStore) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserStore) FindByName(ctx context.Context, normalizedUserName string) (*domain.User, error) {
	return s.users.GetByNormalizedUserName(ctx, normalizedUserName)
}

func (s *UserStore) FindByEmail(ctx context.Context, normalizedEmail string) (*domain.User, error) {
	return s.users.GetByNormalizedMailAddress(ctx, normalizedEmail)
}
