package i18n

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// MessageSource resolves an error-code key to a localized, optionally
// formatted string. The locale is taken from the request context.
type MessageSource interface {
	GetString(ctx context.Context, key string, args ...string) string
}

// Catalog is a process-wide, read-only after construction message catalog.
type Catalog struct {
	messages map[string]map[string]string
}

// NewCatalog returns the built-in catalog covering all supported locales.
func NewCatalog() *Catalog {
	return &Catalog{messages: builtinMessages}
}

// GetString looks the key up in the caller's locale. A missing or empty
// template yields the key wrapped in brackets. With no args the raw
// template is returned unformatted; otherwise placeholders {0}, {1}, ...
// are substituted positionally.
func (c *Catalog) GetString(ctx context.Context, key string, args ...string) string {
	template := c.lookup(LocaleFrom(ctx), key)
	if template == "" {
		return "[" + key + "]"
	}
	if len(args) == 0 {
		return template
	}
	return formatTemplate(template, args)
}

func (c *Catalog) lookup(tag language.Tag, key string) string {
	if byKey, ok := c.messages[tag.String()]; ok {
		if template, ok := byKey[key]; ok {
			return template
		}
	}
	if tag != DefaultLocale {
		if template, ok := c.messages[DefaultLocale.String()][key]; ok {
			return template
		}
	}
	return ""
}

// formatTemplate substitutes {0}, {1}, ... placeholders. Placeholders with
// no matching argument are left as-is; extra arguments are ignored.
func formatTemplate(template string, args []string) string {
	out := template
	for i, arg := range args {
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", arg)
	}
	return out
}

var builtinMessages = map[string]map[string]string{
	"en-US": {
		"UserCreationFailed":       "User creation failed: {0}",
		"InvalidCredentials":       "Invalid credentials for {0}.",
		"MailAddressAlreadyExists": "The mail address {0} is already in use.",
		"UsernameAlreadyExists":    "The username {0} is already taken.",
	},
	"fr-FR": {
		"UserCreationFailed":       "La création de l'utilisateur a échoué : {0}",
		"InvalidCredentials":       "Identifiants invalides pour {0}.",
		"MailAddressAlreadyExists": "L'adresse mail {0} est déjà utilisée.",
		"UsernameAlreadyExists":    "Le nom d'utilisateur {0} est déjà pris.",
	},
}
