// Copyright (c) 2026 marsAI. All rights reserved.

package middleware

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/ctxutil"
	"github.com/marsai/festival/internal/platform/i18n"
)

// Locale negotiates the response language and stores it in the context.
//
// Precedence: ?lang= query parameter, then Accept-Language, then fallback.
func Locale(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			override := request.URL.Query().Get(constants.QueryLang)
			header := request.Header.Get(constants.HeaderAcceptLanguage)

			tag := i18n.MatchOr(override, header, fallback)

			writer.Header().Set(constants.HeaderContentLang, tag.String())
			ctx := ctxutil.WithLocale(request.Context(), tag)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
