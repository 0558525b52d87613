package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/apierror"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/identity"
	"github.com/spec-kit/user-service/internal/repository"
)

// UserService coordinates registration, sign-in, sign-up and listing.
// Failures surface as *apierror.Error; storage errors below the identity
// store never escape as-is.
type UserService struct {
	manager *identity.Manager
	users   repository.UserRepository
	errs    *apierror.Factory
	limiter *auth.SignInLimiter
	logger  *zap.Logger
}

// UserDependencies encapsulates collaborator requirements for the service.
type UserDependencies struct {
	Manager       *identity.Manager
	UserRepo      repository.UserRepository
	ErrorFactory  *apierror.Factory
	SignInLimiter *auth.SignInLimiter
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies, logger *zap.Logger) *UserService {
	return &UserService{
		manager: deps.Manager,
		users:   deps.UserRepo,
		errs:    deps.ErrorFactory,
		limiter: deps.SignInLimiter,
		logger:  logger,
	}
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}

// Create registers a user on behalf of an authenticated caller. Username
// uniqueness is checked before mail uniqueness; the stored mail address is
// lowercased. The created user is re-fetched by id before returning.
func (s *UserService) Create(ctx context.Context, mailAddress, userName, password string) (*domain.User, error) {
	s.logger.Debug("creating user",
		zap.String("mail_address", mailAddress),
		zap.String("user_name", userName),
	)

	existingByName, err := s.manager.FindByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, s.errs.Create(ctx, apierror.KindConflict, apierror.CodeUsernameAlreadyExists, userName)
	}

	existingByMail, err := s.manager.FindByEmail(ctx, mailAddress)
	if err != nil {
		return nil, err
	}
	if existingByMail != nil {
		return nil, s.errs.Create(ctx, apierror.KindConflict, apierror.CodeMailAddressAlreadyExists, mailAddress)
	}

	user := domain.NewUser(strings.ToLower(mailAddress), userName, "")
	if result := s.manager.Create(ctx, user, password); !result.Succeeded {
		return nil, s.errs.Create(ctx, apierror.KindBadRequest, apierror.CodeUserCreationFailed, result.Descriptions()...)
	}

	return s.manager.FindByID(ctx, user.ID().String())
}

// SignIn authenticates by username first, then by mail address. Any miss
// or password failure yields the same unauthorized error.
func (s *UserService) SignIn(ctx context.Context, usernameOrMailAddress, password string) (*domain.User, error) {
	s.logger.Debug("sign-in attempt", zap.String("identifier", usernameOrMailAddress))

	if limited, err := s.limiter.Limited(ctx, usernameOrMailAddress); err == nil && limited {
		return nil, s.errs.Create(ctx, apierror.KindUnauthorized, apierror.CodeInvalidCredentials, usernameOrMailAddress)
	}

	user, err := s.manager.FindByName(ctx, usernameOrMailAddress)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.manager.FindByEmail(ctx, usernameOrMailAddress)
		if err != nil {
			return nil, err
		}
	}

	if user == nil || !s.manager.CheckPassword(ctx, user, password) {
		s.limiter.RecordFailure(ctx, usernameOrMailAddress)
		return nil, s.errs.Create(ctx, apierror.KindUnauthorized, apierror.CodeInvalidCredentials, usernameOrMailAddress)
	}

	s.limiter.Reset(ctx, usernameOrMailAddress)
	return user, nil
}

// SignUp registers a user anonymously. Same uniqueness checks and ordering
// as Create, but the user is built eagerly with the raw mail address and
// returned directly without a re-fetch. The mail-conflict error carries the
// username as its argument, and creation failures carry the username plus
// one joined description string.
func (s *UserService) SignUp(ctx context.Context, mailAddress, username, password string) (*domain.User, error) {
	s.logger.Debug("sign-up attempt",
		zap.String("mail_address", mailAddress),
		zap.String("user_name", username),
	)

	existing, err := s.manager.FindByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, s.errs.Create(ctx, apierror.KindConflict, apierror.CodeUsernameAlreadyExists, username)
	}

	existing, err = s.manager.FindByEmail(ctx, mailAddress)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, s.errs.Create(ctx, apierror.KindConflict, apierror.CodeMailAddressAlreadyExists, username)
	}

	user := domain.NewUser(mailAddress, username, password)

	if result := s.manager.Create(ctx, user, password); !result.Succeeded {
		joined := strings.Join(result.Descriptions(), " / ")
		return nil, s.errs.Create(ctx, apierror.KindBadRequest, apierror.CodeUserCreationFailed, username, joined)
	}

	return user, nil
}
