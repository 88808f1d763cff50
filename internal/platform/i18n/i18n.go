// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package i18n resolves the request locale and translates client-facing text.

The festival is bilingual. French is the default; English is the only other
supported locale. Messages are keyed by their English source text, so an
untranslated key falls back to readable English.

Usage:

	tag := i18n.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	i18n.T(tag, "Please fill in all required fields")

The resolved [language.Tag] is passed explicitly into presenters; nothing in
this package reads request state on its own.
*/
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/marsai/festival/internal/platform/apperr"
)

// # Supported Locales

var (
	// French is the default festival locale.
	French = language.French
	// English is the secondary locale.
	English = language.English

	supported = []language.Tag{French, English}
	matcher   = language.NewMatcher(supported)
	messages  = buildCatalog()
)

// Supported returns the locales the API can answer in.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match picks a supported locale from an explicit override (e.g. "?lang=en")
// and an Accept-Language header value. The override wins when it parses.
func Match(override, acceptLanguage string) language.Tag {
	return MatchOr(override, acceptLanguage, French)
}

// MatchOr is [Match] with an explicit fallback for unusable preferences.
func MatchOr(override, acceptLanguage string, fallback language.Tag) language.Tag {
	if override != "" {
		if tag, err := language.Parse(override); err == nil {
			_, index, confidence := matcher.Match(tag)
			if confidence != language.No {
				return supported[index]
			}
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supported[index]
			}
		}
	}

	return fallback
}

// Parse maps a configured locale string onto a supported tag, defaulting to French.
func Parse(value string) language.Tag {
	return Match(value, "")
}

// # Translation

// T translates key into the given locale, formatting args when present.
func T(tag language.Tag, key string, args ...any) string {
	return printer(tag).Sprintf(key, args...)
}

// Text is a pair of hand-written labels for data that is not a message key
// (reference lists, event titles).
type Text struct {
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the label for tag.
func (t Text) In(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "en" {
		return t.EN
	}
	return t.FR
}

// LocalizeError returns a translated copy of ae. The original is never mutated
// because the same *AppError value is often a package-level sentinel.
func LocalizeError(ae *apperr.AppError, tag language.Tag) *apperr.AppError {
	if ae == nil {
		return nil
	}

	clone := *ae
	clone.Message = T(tag, ae.Message)

	if len(ae.Details) > 0 {
		clone.Details = make([]apperr.FieldError, len(ae.Details))
		for i, detail := range ae.Details {
			key := detail.Key
			if key == "" {
				key = detail.Message
			}
			detail.Message = T(tag, key, detail.Args...)
			clone.Details[i] = detail
		}
	}

	return &clone
}

func printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

func buildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(English))
	for key, translated := range frenchMessages {
		if err := builder.SetString(French, key, translated); err != nil {
			panic(fmt.Sprintf("i18n: invalid catalog entry %q: %v", key, err))
		}
	}
	return builder
}
