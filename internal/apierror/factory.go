package apierror

import (
	"context"
	"fmt"

	"github.com/spec-kit/user-service/internal/i18n"
)

// Kind enumerates the error variants the factory can build.
type Kind int

const (
	KindBadRequest Kind = iota
	KindConflict
	KindUnauthorized
)

// Factory builds typed API errors with localized messages.
type Factory struct {
	messages i18n.MessageSource
}

// NewFactory constructs a factory over the given message source.
func NewFactory(messages i18n.MessageSource) *Factory {
	return &Factory{messages: messages}
}

var builders = map[Kind]func(code ErrorCode, message string) *Error{
	KindConflict:     NewConflict,
	KindUnauthorized: NewUnauthorized,
	KindBadRequest: func(code ErrorCode, message string) *Error {
		return NewBadRequest(code, message)
	},
}

// Create resolves the localized message for code using args as format
// arguments, then builds the requested error kind. An unknown kind is a
// programmer error and panics.
func (f *Factory) Create(ctx context.Context, kind Kind, code ErrorCode, args ...string) *Error {
	build, ok := builders[kind]
	if !ok {
		panic(fmt.Sprintf("apierror: unsupported error kind %d", kind))
	}
	message := f.messages.GetString(ctx, string(code), args...)
	return build(code, message)
}
