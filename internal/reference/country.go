// Copyright (c) 2026 marsAI. All rights reserved.

package reference

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/marsai/festival/pkg/slug"
)

/*
CountryCode resolves a country as typed in the submission form to its ISO
3166-1 alpha-2 code.

Description: Accepts codes ("gh") and English or French CLDR names, ignoring
case, accents and punctuation ("Ghana", "etats unis", "Royaume-Uni").

Returns:
  - string: the upper-case code
  - bool: false when nothing matches
*/
func CountryCode(value string) (string, bool) {
	key := slug.From(value)
	if key == "" {
		return "", false
	}

	if len(key) == 2 {
		if region, err := language.ParseRegion(key); err == nil && region.IsCountry() {
			return region.String(), true
		}
	}

	code, ok := countryNames()[key]
	return code, ok
}

// countryNames maps the folded English and French name of every country to its code.
var countryNames = sync.OnceValue(func() map[string]string {
	namers := []display.Namer{display.English.Regions(), display.French.Regions()}
	names := make(map[string]string)

	for first := 'A'; first <= 'Z'; first++ {
		for second := 'A'; second <= 'Z'; second++ {
			region, err := language.ParseRegion(string([]rune{first, second}))
			if err != nil || !region.IsCountry() {
				continue
			}
			for _, namer := range namers {
				if name := slug.From(namer.Name(region)); name != "" {
					names[name] = region.String()
				}
			}
		}
	}
	return names
})
