// Copyright (c) 2026 marsAI. All rights reserved.

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/platform/validate"
)

/*
TestMatch resolves the locale from override and Accept-Language.
*/
func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		override string
		header   string
		want     string
	}{
		{"default_french", "", "", "fr"},
		{"header_english", "", "en-GB,en;q=0.9", "en"},
		{"header_unsupported_falls_back", "", "ja-JP", "fr"},
		{"override_wins", "en", "fr-FR", "en"},
		{"garbage_override_ignored", "??", "en-US", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := i18n.Match(tt.override, tt.header)
			base, _ := got.Base()
			assert.Equal(t, tt.want, base.String())
		})
	}
}

/*
TestT_FallsBackToKey keeps English readable without catalog entries.
*/
func TestT_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "Please fill in all required fields", i18n.T(i18n.English, "Please fill in all required fields"))
	assert.Equal(t, "Veuillez remplir tous les champs obligatoires", i18n.T(i18n.French, "Please fill in all required fields"))
}

/*
TestLocalizeError translates message and details without mutating the source.
*/
func TestLocalizeError(t *testing.T) {
	v := &validate.Validator{}
	v.Required("first_name", "").MaxLen("synopsis_original", "abcd", 3)
	source := apperr.As(v.Err())
	require.NotNil(t, source)

	localized := i18n.LocalizeError(source, i18n.French)

	assert.Equal(t, "La validation a échoué", localized.Message)
	assert.Equal(t, "Ce champ est obligatoire", localized.Details[0].Message)
	assert.Equal(t, "Maximum 3 caractères", localized.Details[1].Message)

	assert.Equal(t, "Validation failed", source.Message)
	assert.Equal(t, "This field is required", source.Details[0].Message)
}

/*
TestText_In picks the label for the locale.
*/
func TestText_In(t *testing.T) {
	label := i18n.Text{FR: "Sans dialogue", EN: "No dialogue"}
	assert.Equal(t, "Sans dialogue", label.In(i18n.French))
	assert.Equal(t, "No dialogue", label.In(i18n.English))
}
