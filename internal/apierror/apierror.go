package apierror

import "net/http"

// ErrorCode is the closed set of machine-readable error codes. Each code
// doubles as the message catalog key.
type ErrorCode string

const (
	CodeUserCreationFailed       ErrorCode = "UserCreationFailed"
	CodeInvalidCredentials       ErrorCode = "InvalidCredentials"
	CodeMailAddressAlreadyExists ErrorCode = "MailAddressAlreadyExists"
	CodeUsernameAlreadyExists    ErrorCode = "UsernameAlreadyExists"
)

// Error is a typed API error carrying an HTTP status. Immutable once
// constructed; rendered to clients at the HTTP boundary only.
type Error struct {
	Code    ErrorCode
	Message string
	Details []string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// NewConflict builds a 409 error.
func NewConflict(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: []string{}, Status: http.StatusConflict}
}

// NewUnauthorized builds a 401 error.
func NewUnauthorized(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: []string{}, Status: http.StatusUnauthorized}
}

// NewBadRequest builds a 400 error. The first message doubles as the error
// message and all messages are carried as details.
func NewBadRequest(code ErrorCode, messages ...string) *Error {
	message := "Bad request"
	if len(messages) > 0 {
		message = messages[0]
	}
	details := messages
	if details == nil {
		details = []string{}
	}
	return &Error{Code: code, Message: message, Details: details, Status: http.StatusBadRequest}
}
