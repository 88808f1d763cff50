// Copyright (c) 2026 marsAI. All rights reserved.

package gallery_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/platform/apperr"
)

var catalogue = []gallery.Film{
	{ID: "f1", Title: "Les Marées", TitleEnglish: "The Tides", Director: "Léa Martin", Country: "FR",
		Category: gallery.CategoryFiction, AITools: []string{"Image", "Sound"}, OfficialSelection: true},
	{ID: "f2", Title: "Neon Harbor", TitleEnglish: "Neon Harbor", Director: "Kenji Sato", Country: "JP",
		Category: gallery.CategoryAnimation, AITools: []string{"Video", "Runway"}},
	{ID: "f3", Title: "Rêves de sable", TitleEnglish: "Sand Dreams", Director: "Amina Diallo", Country: "SN",
		Category: gallery.CategoryDocumentary, AITools: []string{"Script"}, OfficialSelection: true},
	{ID: "f4", Title: "Marseille 2084", TitleEnglish: "Marseille 2084", Director: "Hugo Bernard", Country: "FR",
		Category: gallery.CategoryExperimental, AITools: []string{"Image", "Video"}},
}

func ids(films []gallery.Film) []string {
	out := make([]string, 0, len(films))
	for _, film := range films {
		out = append(out, film.ID)
	}
	return out
}

func TestFilter_Matches(t *testing.T) {
	tests := []struct {
		name   string
		filter gallery.Filter
		want   []string
	}{
		{"zero value matches all", gallery.Filter{}, []string{"f1", "f2", "f3", "f4"}},
		{"title is case insensitive", gallery.Filter{Query: "MARSEILLE"}, []string{"f4"}},
		{"english title", gallery.Filter{Query: "dreams"}, []string{"f3"}},
		{"director", gallery.Filter{Query: "sato"}, []string{"f2"}},
		{"any of the tools", gallery.Filter{AITools: []string{"Script", "Sound"}}, []string{"f1", "f3"}},
		{"tool names ignore case", gallery.Filter{AITools: []string{"video"}}, []string{"f2", "f4"}},
		{"countries", gallery.Filter{Countries: []string{"fr", "SN"}}, []string{"f1", "f3", "f4"}},
		{"category", gallery.Filter{Category: gallery.CategoryAnimation}, []string{"f2"}},
		{"category all", gallery.Filter{Category: gallery.CategoryAll}, []string{"f1", "f2", "f3", "f4"}},
		{"official only", gallery.Filter{OfficialOnly: true}, []string{"f1", "f3"}},
		{"criteria combine", gallery.Filter{Countries: []string{"FR"}, AITools: []string{"Video"}}, []string{"f4"}},
		{"nothing", gallery.Filter{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := gallery.Paginate(catalogue, tt.filter, 1, tt.filter.Token())
			if diff := cmp.Diff(tt.want, ids(page.Films)); diff != "" {
				t.Errorf("Paginate() films mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(catalogue), page.Meta.CatalogueTotal)
		})
	}
}

func TestFilter_Token(t *testing.T) {
	base := gallery.Filter{Query: "Mer", AITools: []string{"Video", "Image"}, Countries: []string{"fr"}}
	same := gallery.Filter{Query: " mer ", AITools: []string{"Image", "Video", "Image"}, Countries: []string{"FR"}, Category: gallery.CategoryAll}

	assert.Equal(t, base.Token(), same.Token())
	assert.NotEqual(t, base.Token(), gallery.Filter{Query: "Mer"}.Token())
	assert.NotEqual(t, base.Token(), gallery.Filter{Query: "Mer", AITools: base.AITools, Countries: base.Countries, OfficialOnly: true}.Token())
	assert.Len(t, base.Token(), 16)
}

func numbered(n int) []gallery.Film {
	films := make([]gallery.Film, n)
	for i := range films {
		films[i] = gallery.Film{ID: fmt.Sprintf("f%02d", i+1), Title: "Film", Category: gallery.CategoryFiction}
	}
	return films
}

func TestPaginate(t *testing.T) {
	films := numbered(45)
	token := gallery.Filter{}.Token()

	tests := []struct {
		name      string
		page      int
		token     string
		wantPage  int
		wantFirst string
		wantCount int
	}{
		{"first page", 1, token, 1, "f01", 20},
		{"last partial page", 3, token, 3, "f41", 5},
		{"clamped high", 9, token, 3, "f41", 5},
		{"clamped low", -2, token, 1, "f01", 20},
		{"filter changed resets to 1", 2, "stale", 1, "f01", 20},
		{"first load without token", 2, "", 1, "f01", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := gallery.Paginate(films, gallery.Filter{}, tt.page, tt.token)
			require.Len(t, page.Films, tt.wantCount)
			assert.Equal(t, tt.wantFirst, page.Films[0].ID)
			assert.Equal(t, tt.wantPage, page.Meta.Page)
			assert.Equal(t, 3, page.Meta.TotalPages)
			assert.Equal(t, 45, page.Meta.Total)
			assert.Equal(t, gallery.PageSize, page.Meta.Limit)
			assert.Equal(t, token, page.Meta.FilterToken)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := gallery.Paginate(nil, gallery.Filter{Query: "x"}, 4, "")
	assert.NotNil(t, page.Films)
	assert.Empty(t, page.Films)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Zero(t, page.Meta.TotalPages)
}

// # Service

type memoryRepo struct {
	mu    sync.Mutex
	films map[string]gallery.Film
	lists int
}

func (repo *memoryRepo) ListPublished(_ context.Context, festivalID string) ([]gallery.Film, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.lists++
	out := make([]gallery.Film, 0)
	for _, film := range repo.films {
		if film.FestivalID == festivalID {
			out = append(out, film)
		}
	}
	return out, nil
}

func (repo *memoryRepo) FindByID(_ context.Context, id string) (*gallery.Film, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, film := range repo.films {
		if film.ID == id {
			return &film, nil
		}
	}
	return nil, apperr.NotFound("Film")
}

func (repo *memoryRepo) Publish(_ context.Context, film *gallery.Film) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if existing, ok := repo.films[film.SubmissionID]; ok {
		film.ID, film.PublishedAt = existing.ID, existing.PublishedAt
	}
	repo.films[film.SubmissionID] = *film
	return nil
}

func (repo *memoryRepo) Unpublish(_ context.Context, submissionID string) (*gallery.Film, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	film, ok := repo.films[submissionID]
	if !ok {
		return nil, apperr.NotFound("Film")
	}
	delete(repo.films, submissionID)
	return &film, nil
}

type memoryCache struct {
	entries     map[string][]gallery.Film
	failReads   bool
	invalidated []string
}

func (cache *memoryCache) Get(_ context.Context, festivalID string) ([]gallery.Film, bool, error) {
	if cache.failReads {
		return nil, false, errors.New("redis down")
	}
	films, ok := cache.entries[festivalID]
	return films, ok, nil
}

func (cache *memoryCache) Set(_ context.Context, festivalID string, films []gallery.Film) error {
	cache.entries[festivalID] = films
	return nil
}

func (cache *memoryCache) Invalidate(_ context.Context, festivalID string) error {
	delete(cache.entries, festivalID)
	cache.invalidated = append(cache.invalidated, festivalID)
	return nil
}

type fixedFestivals struct{}

func (fixedFestivals) Active(context.Context) (*festival.Festival, error) {
	return &festival.Festival{ID: "fest-2026", Status: festival.StatusActive}, nil
}

func (fixedFestivals) GetFestival(_ context.Context, identifier string) (*festival.Festival, error) {
	if identifier == "marsai-2025" {
		return &festival.Festival{ID: "fest-2025", Status: festival.StatusArchived}, nil
	}
	return nil, apperr.NotFound("Festival")
}

var published = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newService() (*gallery.Service, *memoryRepo, *memoryCache) {
	repo := &memoryRepo{films: map[string]gallery.Film{}}
	cache := &memoryCache{entries: map[string][]gallery.Film{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return gallery.NewService(repo, cache, fixedFestivals{}, logger, func() time.Time { return published }), repo, cache
}

func publishInput(submissionID string) gallery.PublishInput {
	return gallery.PublishInput{
		FestivalID:      "fest-2026",
		SubmissionID:    submissionID,
		Title:           "Les Marées",
		TitleEnglish:    "The Tides",
		Director:        "Léa Martin",
		Country:         "fr",
		Category:        gallery.CategoryFiction,
		AITools:         []string{"Sound", "Image", "Sound"},
		DurationSeconds: 58,
	}
}

func TestService_PublishInvalidatesCache(t *testing.T) {
	svc, repo, cache := newService()
	ctx := context.Background()

	page, err := svc.Browse(ctx, gallery.Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Films)
	assert.Contains(t, cache.entries, "fest-2026")

	film, err := svc.Publish(ctx, publishInput("s1"))
	require.NoError(t, err)
	assert.Equal(t, "FR", film.Country)
	assert.Equal(t, []string{"Image", "Sound"}, film.AITools)
	assert.Equal(t, published, film.PublishedAt)
	assert.Equal(t, []string{"fest-2026"}, cache.invalidated)

	page, err = svc.Browse(ctx, gallery.Query{})
	require.NoError(t, err)
	require.Len(t, page.Films, 1)
	assert.Equal(t, 2, repo.lists)

	_, err = svc.Browse(ctx, gallery.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists, "served from cache")

	require.NoError(t, svc.Unpublish(ctx, "s1"))
	assert.Len(t, cache.invalidated, 2)
	assert.True(t, apperr.HasCode(svc.Unpublish(ctx, "s1"), apperr.CodeNotFound))
}

func TestService_CacheFailureFallsBack(t *testing.T) {
	svc, repo, cache := newService()
	_, err := svc.Publish(context.Background(), publishInput("s1"))
	require.NoError(t, err)
	cache.failReads = true

	page, err := svc.Browse(context.Background(), gallery.Query{})
	require.NoError(t, err)
	assert.Len(t, page.Films, 1)
	assert.Equal(t, 1, repo.lists)
}

func TestService_Browse_Validation(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Browse(context.Background(), gallery.Query{Filter: gallery.Filter{Category: "Western"}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = svc.Browse(context.Background(), gallery.Query{Festival: "unknown"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = svc.Browse(context.Background(), gallery.Query{Festival: "marsai-2025"})
	assert.NoError(t, err)
}

func TestService_Publish_Validation(t *testing.T) {
	svc, _, _ := newService()

	input := publishInput("s1")
	input.Category = "Western"
	input.Country = "FRA"
	input.Title = ""

	_, err := svc.Publish(context.Background(), input)
	appError := apperr.As(err)
	require.NotNil(t, appError)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"title", "country", "category"}, fields)
}

// # HTTP

func TestHTTP_Browse(t *testing.T) {
	svc, _, _ := newService()
	for _, id := range []string{"s1", "s2"} {
		input := publishInput(id)
		if id == "s2" {
			input.Title, input.Country, input.OfficialSelection = "Neon Harbor", "JP", true
		}
		_, err := svc.Publish(context.Background(), input)
		require.NoError(t, err)
	}
	handler := gallery.NewHandler(svc)

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?countries=jp,us&official=true", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, `"title":"Neon Harbor"`)
	assert.NotContains(t, body, `"title":"Les Marées"`)
	assert.Contains(t, body, `"filter_token":"`)
	assert.Contains(t, body, `"catalogue_total":2`)
	assert.Contains(t, body, `"total":1`)

	bad := httptest.NewRecorder()
	handler.Routes().ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/?category=Western", nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	missing := httptest.NewRecorder()
	handler.Routes().ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/not-an-id", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
