package dto

import (
	"github.com/spec-kit/user-service/internal/domain"
)

// SignInRequest payload for sign-in.
type SignInRequest struct {
	UsernameOrMailAddress string `json:"usernameOrMailAddress"`
	Password              string `json:"password"`
}

// SignUpRequest payload for anonymous registration.
type SignUpRequest struct {
	MailAddress string `json:"mailAddress"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// CreateUserRequest payload for authenticated user creation.
type CreateUserRequest struct {
	MailAddress string `json:"mailAddress"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// UserViewModel is the client-facing projection of a user.
type UserViewModel struct {
	ID          string `json:"id"`
	MailAddress string `json:"mailAddress"`
	UserName    string `json:"userName"`
}

// LogInViewModel pairs the signed-in user with its bearer token.
type LogInViewModel struct {
	User        UserViewModel `json:"user"`
	BearerToken string        `json:"bearerToken"`
}

// NewUserViewModel maps a domain user to its view model.
func NewUserViewModel(user *domain.User) UserViewModel {
	return UserViewModel{
		ID:          user.ID().String(),
		MailAddress: user.MailAddress(),
		UserName:    user.UserName(),
	}
}

// NewUserViewModels maps a collection of domain users.
func NewUserViewModels(users []*domain.User) []UserViewModel {
	out := make([]UserViewModel, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserViewModel(user))
	}
	return out
}
