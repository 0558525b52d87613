package domain

import (
	"strings"

	"github.com/google/uuid"
)

// User is the identity aggregate: credentials plus the normalized lookup
// fields derived from them.
type User struct {
	id                    uuid.UUID
	mailAddress           string
	normalizedMailAddress string
	userName              string
	normalizedUserName    string
	passwordHash          string
}

// NewUser creates a user with a fresh identifier. Normalized fields are
// derived as the uppercase of their raw counterparts.
func NewUser(mailAddress, userName, passwordHash string) *User {
	return newUser(uuid.New(), mailAddress, userName, passwordHash)
}

// LoadUser reconstructs a user from persisted fields. Normalized fields are
// recomputed rather than loaded.
func LoadUser(id uuid.UUID, mailAddress, userName, passwordHash string) *User {
	return newUser(id, mailAddress, userName, passwordHash)
}

func newUser(id uuid.UUID, mailAddress, userName, passwordHash string) *User {
	return &User{
		id:                    id,
		mailAddress:           mailAddress,
		normalizedMailAddress: strings.ToUpper(mailAddress),
		userName:              userName,
		normalizedUserName:    strings.ToUpper(userName),
		passwordHash:          passwordHash,
	}
}

// ID returns the immutable identifier.
func (u *User) ID() uuid.UUID { return u.id }

// MailAddress returns the mail address.
func (u *User) MailAddress() string { return u.mailAddress }

// NormalizedMailAddress returns the normalized mail address.
func (u *User) NormalizedMailAddress() string { return u.normalizedMailAddress }

// UserName returns the username.
func (u *User) UserName() string { return u.userName }

// NormalizedUserName returns the normalized username.
func (u *User) NormalizedUserName() string { return u.normalizedUserName }

// PasswordHash returns the password hash, empty when none is set.
func (u *User) PasswordHash() string { return u.passwordHash }

// UpdateMailAddress sets a new mail address and re-derives its normalized twin.
func (u *User) UpdateMailAddress(mailAddress string) {
	u.mailAddress = mailAddress
	u.normalizedMailAddress = strings.ToUpper(mailAddress)
}

// UpdateNormalizedMailAddress overrides only the normalized mail address.
// Used by the identity manager's normalization pass; after this call the
// normalized field may diverge from the uppercase of the raw field.
func (u *User) UpdateNormalizedMailAddress(normalizedMailAddress string) {
	u.normalizedMailAddress = normalizedMailAddress
}

// UpdateUserName sets a new username and re-derives its normalized twin.
func (u *User) UpdateUserName(userName string) {
	u.userName = userName
	u.normalizedUserName = strings.ToUpper(userName)
}

// UpdateNormalizedUserName overrides only the normalized username.
func (u *User) UpdateNormalizedUserName(normalizedUserName string) {
	u.normalizedUserName = normalizedUserName
}

// UpdatePasswordHash sets a new password hash.
func (u *User) UpdatePasswordHash(passwordHash string) {
	u.passwordHash = passwordHash
}
