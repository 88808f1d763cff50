// Copyright (c) 2026 marsAI. All rights reserved.

package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/marsai/festival/pkg/pagination"
	"github.com/marsai/festival/pkg/slice"
)

// PageSize is the fixed number of films per gallery page.
const PageSize = 20

// Category is the genre a film is published under.
type Category string

const (
	CategoryFiction      Category = "Fiction"
	CategoryDocumentary  Category = "Documentaire"
	CategoryAnimation    Category = "Animation"
	CategoryExperimental Category = "Expérimental"

	// CategoryAll disables the category filter.
	CategoryAll Category = "all"
)

// Categories lists the publishable categories.
var Categories = []Category{CategoryFiction, CategoryDocumentary, CategoryAnimation, CategoryExperimental}

// Valid reports whether c is a publishable category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// AITools are the tool families a visitor can filter on. Films may list
// free tool names next to them.
var AITools = []string{"Script", "Image", "Video", "Sound"}

// Film is a published gallery entry.
type Film struct {
	ID                string    `json:"id"`
	FestivalID        string    `json:"festival_id"`
	SubmissionID      string    `json:"submission_id"`
	Title             string    `json:"title"`
	TitleEnglish      string    `json:"title_english"`
	Director          string    `json:"director"`
	Country           string    `json:"country"`
	Category          Category  `json:"category"`
	AITools           []string  `json:"ai_tools"`
	OfficialSelection bool      `json:"official_selection"`
	DurationSeconds   int       `json:"duration_seconds"`
	ThumbnailURL      string    `json:"thumbnail_url"`
	VideoURL          string    `json:"video_url"`
	PublishedAt       time.Time `json:"published_at"`
}

// # Filter

// Filter is the visitor's gallery query. The zero value matches every film.
type Filter struct {
	Query        string
	AITools      []string
	Countries    []string
	Category     Category
	OfficialOnly bool
}

// Normalize returns the canonical form of the filter: trimmed search text,
// upper-case country codes, sorted and deduplicated lists, "all" for an
// empty category.
func (filter Filter) Normalize() Filter {
	normalized := Filter{
		Query:        strings.TrimSpace(filter.Query),
		AITools:      canonicalSet(filter.AITools, strings.TrimSpace),
		Countries:    canonicalSet(filter.Countries, func(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }),
		Category:     filter.Category,
		OfficialOnly: filter.OfficialOnly,
	}
	if normalized.Category == "" {
		normalized.Category = CategoryAll
	}
	return normalized
}

func canonicalSet(values []string, clean func(string) string) []string {
	set := make([]string, 0, len(values))
	for _, value := range values {
		if value = clean(value); value != "" {
			set = append(set, value)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

/*
Token is a stable fingerprint of the normalized filter.

Description: Clients echo it back with the next page request. A token that
no longer matches the filter means the filter changed, and the gallery
restarts at page 1.
*/
func (filter Filter) Token() string {
	normalized := filter.Normalize()

	var canonical strings.Builder
	canonical.WriteString("q=" + strings.ToLower(normalized.Query))
	canonical.WriteString("|tools=" + strings.ToLower(strings.Join(normalized.AITools, ",")))
	canonical.WriteString("|countries=" + strings.Join(normalized.Countries, ","))
	canonical.WriteString("|category=" + string(normalized.Category))
	canonical.WriteString("|official=" + strconv.FormatBool(normalized.OfficialOnly))

	sum := sha256.Sum256([]byte(canonical.String()))
	return hex.EncodeToString(sum[:8])
}

/*
Matches is the gallery predicate.

Description: Every active criterion must hold:
  - Query: case-insensitive substring of the title, English title or director
  - AITools: the film lists at least one of them
  - Countries: the film's country is one of them
  - Category: equality, unless "all"
  - OfficialOnly: the film is in the official selection
*/
func (filter Filter) Matches(film Film) bool {
	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		if !strings.Contains(strings.ToLower(film.Title), query) &&
			!strings.Contains(strings.ToLower(film.TitleEnglish), query) &&
			!strings.Contains(strings.ToLower(film.Director), query) {
			return false
		}
	}

	if len(filter.AITools) > 0 && !slices.ContainsFunc(filter.AITools, func(tool string) bool {
		return slices.ContainsFunc(film.AITools, func(candidate string) bool { return strings.EqualFold(candidate, tool) })
	}) {
		return false
	}

	if len(filter.Countries) > 0 && !slices.ContainsFunc(filter.Countries, func(code string) bool {
		return strings.EqualFold(code, film.Country)
	}) {
		return false
	}

	if filter.Category != "" && filter.Category != CategoryAll && film.Category != filter.Category {
		return false
	}

	return !filter.OfficialOnly || film.OfficialSelection
}

// # Pagination

// Meta is the pagination block of a gallery page. Total counts the films
// matching the filter; CatalogueTotal counts every published film.
type Meta struct {
	pagination.Meta
	FilterToken    string `json:"filter_token"`
	CatalogueTotal int    `json:"catalogue_total"`
}

// Page is one gallery page.
type Page struct {
	Films []Film
	Meta  Meta
}

/*
Paginate filters catalogue and cuts out one page of [PageSize] films.

Parameters:
  - catalogue: []Film (every published film, in display order)
  - filter: Filter
  - page: int (requested page, clamped to [1, total pages])
  - token: string (filter token the client last received; "" on first load)

Returns:
  - Page: The films of the page and its metadata
*/
func Paginate(catalogue []Film, filter Filter, page int, token string) Page {
	filter = filter.Normalize()
	current := filter.Token()
	if token != current {
		page = 1
	}

	matching := slice.Filter(catalogue, filter.Matches)
	clamped, start, end := pagination.Window(page, PageSize, len(matching))

	return Page{
		Films: matching[start:end],
		Meta: Meta{
			Meta:           pagination.NewMeta(clamped, PageSize, len(matching)),
			FilterToken:    current,
			CatalogueTotal: len(catalogue),
		},
	}
}
