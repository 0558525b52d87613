package i18n

import (
	"context"

	"golang.org/x/text/language"
)

// Supported locales; the first entry is the default.
var supportedTags = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("fr-FR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

type localeContextKey struct{}

// DefaultLocale is the fallback when a request carries no usable locale.
var DefaultLocale = supportedTags[0]

// MatchLocale resolves an Accept-Language header value to a supported tag.
func MatchLocale(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, _ := tagMatcher.Match(tags...)
	return supportedTags[index]
}

// WithLocale stores the request locale in the context.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeContextKey{}, tag)
}

// LocaleFrom returns the locale stored in the context, or the default.
func LocaleFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeContextKey{}).(language.Tag); ok {
		return tag
	}
	return DefaultLocale
}
