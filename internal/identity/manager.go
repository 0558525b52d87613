package identity

import (
	"context"
	"strings"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
)

// Manager orchestrates user persistence through a Store: it normalizes
// lookup keys, hashes passwords and runs the normalization pass before
// every write.
type Manager struct {
	store      Store
	bcryptCost int
}

// NewManager builds a manager over the given store.
func NewManager(store Store, bcryptCost int) *Manager {
	return &Manager{store: store, bcryptCost: bcryptCost}
}

// Normalize is the canonical key normalization: an uppercase transform.
func (m *Manager) Normalize(value string) string {
	return strings.ToUpper(value)
}

// FindByID looks a user up by its string identifier.
func (m *Manager) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.store.FindByID(ctx, userID)
}

// FindByName looks a user up by username, normalizing first.
func (m *Manager) FindByName(ctx context.Context, userName string) (*domain.User, error) {
	return m.store.FindByName(ctx, m.Normalize(userName))
}

// FindByEmail looks a user up by mail address, normalizing first.
func (m *Manager) FindByEmail(ctx context.Context, mailAddress string) (*domain.User, error) {
	return m.store.FindByEmail(ctx, m.Normalize(mailAddress))
}

// Create hashes the password, replays the normalization pass over the
// store and persists the user. Storage failures surface as a failed Result.
func (m *Manager) Create(ctx context.Context, user *domain.User, password string) Result {
	hash, err := auth.HashPassword(password, m.bcryptCost)
	if err != nil {
		return Failed(ResultError{Code: ErrCodeUserCreateFailed, Description: err.Error()})
	}
	if err := m.store.SetPasswordHash(ctx, user, hash); err != nil {
		return Failed(ResultError{Code: ErrCodeUserCreateFailed, Description: err.Error()})
	}
	if err := m.normalizePass(ctx, user); err != nil {
		return Failed(ResultError{Code: ErrCodeUserCreateFailed, Description: err.Error()})
	}
	return m.store.Create(ctx, user)
}

// Update replays the normalization pass and persists the user.
func (m *Manager) Update(ctx context.Context, user *domain.User) Result {
	if err := m.normalizePass(ctx, user); err != nil {
		return Failed(ResultError{Code: ErrCodeUserUpdateFailed, Description: err.Error()})
	}
	return m.store.Update(ctx, user)
}

// Delete removes the persisted user.
func (m *Manager) Delete(ctx context.Context, user *domain.User) Result {
	return m.store.Delete(ctx, user)
}

// CheckPassword verifies the password against the stored hash. Users
// without a password never match.
func (m *Manager) CheckPassword(ctx context.Context, user *domain.User, password string) bool {
	hasPassword, err := m.store.HasPassword(ctx, user)
	if err != nil || !hasPassword {
		return false
	}
	hash, err := m.store.GetPasswordHash(ctx, user)
	if err != nil {
		return false
	}
	return auth.ComparePassword(hash, password) == nil
}

func (m *Manager) normalizePass(ctx context.Context, user *domain.User) error {
	name, err := m.store.GetUserName(ctx, user)
	if err != nil {
		return err
	}
	if err := m.store.SetNormalizedUserName(ctx, user, m.Normalize(name)); err != nil {
		return err
	}
	email, err := m.store.GetEmail(ctx, user)
	if err != nil {
		return err
	}
	return m.store.SetNormalizedEmail(ctx, user, m.Normalize(email))
}
