package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("derives normalized fields as uppercase", func(t *testing.T) {
		user := NewUser("a@b.com", "Ann", "")

		require.Equal(t, "a@b.com", user.MailAddress())
		require.Equal(t, "A@B.COM", user.NormalizedMailAddress())
		require.Equal(t, "Ann", user.UserName())
		require.Equal(t, "ANN", user.NormalizedUserName())
		require.Empty(t, user.PasswordHash())
	})

	t.Run("generates a fresh identifier per user", func(t *testing.T) {
		first := NewUser("a@b.com", "Ann", "")
		second := NewUser("a@b.com", "Ann", "")

		require.NotEqual(t, uuid.Nil, first.ID())
		require.NotEqual(t, first.ID(), second.ID())
	})
}

func TestLoadUser(t *testing.T) {
	t.Parallel()

	t.Run("round-trips persisted fields", func(t *testing.T) {
		id := uuid.New()
		user := LoadUser(id, "x@y.org", "Bob", "hash-value")

		require.Equal(t, id, user.ID())
		require.Equal(t, "x@y.org", user.MailAddress())
		require.Equal(t, "Bob", user.UserName())
		require.Equal(t, "hash-value", user.PasswordHash())
	})

	t.Run("recomputes normalized fields instead of loading them", func(t *testing.T) {
		user := LoadUser(uuid.New(), "Mixed@Case.Com", "mIxEd", "h")

		require.Equal(t, "MIXED@CASE.COM", user.NormalizedMailAddress())
		require.Equal(t, "MIXED", user.NormalizedUserName())
	})
}

func TestUserUpdates(t *testing.T) {
	t.Parallel()

	t.Run("mail update re-derives normalized twin", func(t *testing.T) {
		user := NewUser("a@b.com", "Ann", "")
		user.UpdateMailAddress("new@b.com")

		require.Equal(t, "new@b.com", user.MailAddress())
		require.Equal(t, "NEW@B.COM", user.NormalizedMailAddress())
	})

	t.Run("username update re-derives normalized twin", func(t *testing.T) {
		user := NewUser("a@b.com", "Ann", "")
		user.UpdateUserName("Annie")

		require.Equal(t, "Annie", user.UserName())
		require.Equal(t, "ANNIE", user.NormalizedUserName())
	})

	t.Run("normalized-only updates may diverge from the raw field", func(t *testing.T) {
		user := NewUser("a@b.com", "Ann", "")
		user.UpdateNormalizedUserName("CUSTOM")
		user.UpdateNormalizedMailAddress("OTHER@B.COM")

		require.Equal(t, "Ann", user.UserName())
		require.Equal(t, "CUSTOM", user.NormalizedUserName())
		require.Equal(t, "a@b.com", user.MailAddress())
		require.Equal(t, "OTHER@B.COM", user.NormalizedMailAddress())
	})

	t.Run("password hash update", func(t *testing.T) {
		user := NewUser("a@b.com", "Ann", "")
		user.UpdatePasswordHash("new-hash")

		require.Equal(t, "new-hash", user.PasswordHash())
	})
}
