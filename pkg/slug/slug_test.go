// Copyright (c) 2026 marsAI. All rights reserved.

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marsai/festival/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"marsAI Marseille 2026", "marsai-marseille-2026"},
		{"Festival de l'Été", "festival-de-l-ete"},
		{"  --Expérimental!!  ", "experimental"},
		{"Tokyo / 東京", "tokyo"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFrom_CutsLongNamesAtWordBoundary(t *testing.T) {
	name := strings.Repeat("cinema ", 20)

	got := slug.From(name)

	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.True(t, slug.Valid(got))
	assert.True(t, strings.HasSuffix(got, "cinema"))
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"marsai-2026", true},
		{"a", true},
		{"Marsai", false},
		{"-marsai", false},
		{"mars--ai", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Valid(tt.in))
		})
	}
}
