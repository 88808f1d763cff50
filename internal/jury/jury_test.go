// Copyright (c) 2026 marsAI. All rights reserved.

package jury_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/jury"
	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/ctxutil"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/pkg/pointer"
)

const (
	festivalID = "0190a8a2-0000-7000-8000-0000000000f1"
	filmA      = "0190a8a2-0000-7000-8000-0000000000a1"
	filmB      = "0190a8a2-0000-7000-8000-0000000000b2"
	jurorID    = "0190a8a2-0000-7000-8000-0000000000c3"
)

var now = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

// # Fakes

type memoryRepo struct {
	festivalID  string
	films       []jury.AssignedFilm
	evaluations map[string]jury.Evaluation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		festivalID: festivalID,
		films: []jury.AssignedFilm{
			{SubmissionID: filmA, Title: "Les Marées", Director: "Léa Martin", Country: "FR", DurationSeconds: 58},
			{SubmissionID: filmB, Title: "Neon Harbor", Director: "Kofi Mensah", Country: "GH", DurationSeconds: 60},
		},
		evaluations: map[string]jury.Evaluation{},
	}
}

func key(submissionID, jurorID string) string { return submissionID + "|" + jurorID }

func (repo *memoryRepo) attach(film jury.AssignedFilm, jurorID string) jury.AssignedFilm {
	if evaluation, ok := repo.evaluations[key(film.SubmissionID, jurorID)]; ok {
		film.Evaluation = &evaluation
	}
	return film
}

func (repo *memoryRepo) ListAssigned(_ context.Context, festivalID, jurorID string) ([]jury.AssignedFilm, error) {
	films := make([]jury.AssignedFilm, 0)
	if festivalID != repo.festivalID {
		return films, nil
	}
	for _, film := range repo.films {
		films = append(films, repo.attach(film, jurorID))
	}
	return films, nil
}

func (repo *memoryRepo) FindAssigned(_ context.Context, festivalID, jurorID, submissionID string) (*jury.AssignedFilm, error) {
	if festivalID == repo.festivalID {
		for _, film := range repo.films {
			if film.SubmissionID == submissionID {
				attached := repo.attach(film, jurorID)
				return &attached, nil
			}
		}
	}
	return nil, apperr.NotFound("Film")
}

func (repo *memoryRepo) SaveOpen(_ context.Context, evaluation *jury.Evaluation) (bool, error) {
	k := key(evaluation.SubmissionID, evaluation.JurorID)
	if current, ok := repo.evaluations[k]; ok && current.Submitted {
		return false, nil
	}
	stored := *evaluation
	stored.Submitted = false
	repo.evaluations[k] = stored
	return true, nil
}

func (repo *memoryRepo) SetSubmitted(_ context.Context, submissionID, jurorID string, submitted bool) error {
	k := key(submissionID, jurorID)
	evaluation, ok := repo.evaluations[k]
	if !ok {
		return apperr.NotFound("Evaluation")
	}
	evaluation.Submitted = submitted
	repo.evaluations[k] = evaluation
	return nil
}

type fixedFestivals struct {
	active *festival.Festival
}

func (festivals fixedFestivals) ForAccount(_ context.Context, id string) (*festival.Festival, error) {
	if id == "" || id == festivals.active.ID {
		return festivals.active, nil
	}
	return nil, apperr.NotFound("Festival")
}

func newService(repo *memoryRepo) *jury.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jury.NewService(repo, fixedFestivals{active: &festival.Festival{ID: festivalID}}, logger, func() time.Time { return now })
}

func juror() sec.Identity {
	return sec.Identity{UserID: jurorID, Username: "juror", Role: sec.RoleJury, FestivalID: festivalID}
}

// # Scoring

func TestEvaluation_AverageAndLabel(t *testing.T) {
	tests := []struct {
		name                             string
		creativity, technical, narrative int
		average                          int
		label                            jury.Label
	}{
		{"defaults", 5, 5, 5, 5, jury.LabelAverage},
		{"lowest", 1, 1, 2, 1, jury.LabelPoor},
		{"poor boundary", 3, 3, 4, 3, jury.LabelPoor},
		{"average floor", 4, 4, 4, 4, jury.LabelAverage},
		{"rounds down", 7, 7, 8, 7, jury.LabelAverage},
		{"rounds up", 8, 8, 7, 8, jury.LabelExcellent},
		{"perfect", 10, 10, 10, 10, jury.LabelExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation := &jury.Evaluation{Creativity: tt.creativity, Technical: tt.technical, Narrative: tt.narrative}
			assert.Equal(t, tt.average, evaluation.Average())
			assert.Equal(t, tt.label, jury.LabelFor(evaluation.Average()))
		})
	}
}

func TestLabel_In(t *testing.T) {
	assert.Equal(t, "Faible", jury.LabelPoor.In(i18n.French))
	assert.Equal(t, "Poor", jury.LabelPoor.In(i18n.English))
	assert.Equal(t, "Moyen", jury.LabelAverage.In(i18n.French))
}

func TestFilter_Matches(t *testing.T) {
	rated := jury.AssignedFilm{Title: "Les Marées", Director: "Léa Martin", Evaluation: &jury.Evaluation{Submitted: true}}
	draft := jury.AssignedFilm{Title: "Neon Harbor", Director: "Kofi Mensah", Evaluation: &jury.Evaluation{}}
	unrated := jury.AssignedFilm{Title: "Paper Moons", Director: "Ana Ruiz"}

	tests := []struct {
		name   string
		filter jury.Filter
		want   []bool
	}{
		{"no filter", jury.Filter{}, []bool{true, true, true}},
		{"title search", jury.Filter{Query: "  harbor "}, []bool{false, true, false}},
		{"director search", jury.Filter{Query: "LÉA"}, []bool{true, false, false}},
		{"rated only", jury.Filter{RatedOnly: true}, []bool{true, false, false}},
		{"unrated only", jury.Filter{UnratedOnly: true}, []bool{false, true, true}},
		{"both toggles", jury.Filter{RatedOnly: true, UnratedOnly: true}, []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []bool{tt.filter.Matches(rated), tt.filter.Matches(draft), tt.filter.Matches(unrated)}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// # Service

func TestWorkspace_DefaultsAndProgress(t *testing.T) {
	repo := newMemoryRepo()
	repo.evaluations[key(filmA, jurorID)] = jury.Evaluation{
		SubmissionID: filmA, JurorID: jurorID, Creativity: 9, Technical: 8, Narrative: 10, Submitted: true,
	}
	service := newService(repo)

	workspace, err := service.Workspace(context.Background(), juror(), jury.Filter{}, i18n.French)
	require.NoError(t, err)

	assert.Equal(t, festivalID, workspace.FestivalID)
	assert.Equal(t, jury.Progress{Rated: 1, Total: 2}, workspace.Progress)
	require.Len(t, workspace.Films, 2)

	assert.True(t, workspace.Films[0].Rated)
	assert.Equal(t, 9, workspace.Films[0].Evaluation.Average)
	assert.Equal(t, "Excellent", workspace.Films[0].Evaluation.Verdict)

	unrated := workspace.Films[1]
	assert.False(t, unrated.Rated)
	assert.Equal(t, 5, unrated.Evaluation.Creativity)
	assert.Equal(t, 5, unrated.Evaluation.Average)
	assert.Equal(t, "Moyen", unrated.Evaluation.Verdict)
}

func TestWorkspace_FilterKeepsProgress(t *testing.T) {
	service := newService(newMemoryRepo())

	workspace, err := service.Workspace(context.Background(), juror(), jury.Filter{Query: "neon"}, i18n.English)
	require.NoError(t, err)
	require.Len(t, workspace.Films, 1)
	assert.Equal(t, filmB, workspace.Films[0].SubmissionID)
	assert.Equal(t, jury.Progress{Rated: 0, Total: 2}, workspace.Progress)

	workspace, err = service.Workspace(context.Background(), juror(), jury.Filter{RatedOnly: true, UnratedOnly: true}, i18n.English)
	require.NoError(t, err)
	assert.Empty(t, workspace.Films)
	assert.NotNil(t, workspace.Films)
}

func TestWorkspace_Scoping(t *testing.T) {
	service := newService(newMemoryRepo())

	unscoped := juror()
	unscoped.FestivalID = ""
	_, err := service.Workspace(context.Background(), unscoped, jury.Filter{}, i18n.English)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	superadmin := sec.Identity{UserID: jurorID, Role: sec.RoleSuperAdmin}
	workspace, err := service.Workspace(context.Background(), superadmin, jury.Filter{}, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, festivalID, workspace.FestivalID)
}

func TestRate_PartialInput(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	view, err := service.Rate(context.Background(), juror(), filmA, jury.RateInput{
		Creativity: pointer.To(9),
		Comment:    pointer.To("Beau travail sur le son"),
	}, i18n.English)
	require.NoError(t, err)

	assert.Equal(t, 9, view.Creativity)
	assert.Equal(t, 5, view.Technical)
	assert.Equal(t, 6, view.Average)
	assert.False(t, view.Submitted)

	stored := repo.evaluations[key(filmA, jurorID)]
	assert.Equal(t, "Beau travail sur le son", stored.Comment)
	assert.Equal(t, now, stored.UpdatedAt)

	view, err = service.Rate(context.Background(), juror(), filmA, jury.RateInput{Narrative: pointer.To(2)}, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 9, view.Creativity)
	assert.Equal(t, 2, view.Narrative)
	assert.Equal(t, "Beau travail sur le son", view.Comment)
}

func TestRate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input jury.RateInput
		field string
	}{
		{"score below range", jury.RateInput{Creativity: pointer.To(0)}, "creativity"},
		{"score above range", jury.RateInput{Technical: pointer.To(11)}, "technical"},
		{"comment too long", jury.RateInput{Comment: pointer.To(strings.Repeat("é", 2001))}, "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			_, err := newService(repo).Rate(context.Background(), juror(), filmA, tt.input, i18n.English)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, repo.evaluations)
		})
	}
}

func TestRate_UnknownFilm(t *testing.T) {
	service := newService(newMemoryRepo())

	for _, id := range []string{"not-a-uuid", "0190a8a2-0000-7000-8000-0000000000ff"} {
		_, err := service.Rate(context.Background(), juror(), id, jury.RateInput{}, i18n.English)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), id)
	}
}

func TestSubmit_LocksEvaluation(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	view, err := service.Submit(context.Background(), juror(), filmB, jury.RateInput{}, i18n.English)
	require.NoError(t, err)
	assert.True(t, view.Submitted)
	assert.Equal(t, 5, view.Average)
	assert.True(t, repo.evaluations[key(filmB, jurorID)].Submitted)

	_, err = service.Rate(context.Background(), juror(), filmB, jury.RateInput{Creativity: pointer.To(8)}, i18n.English)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Submit(context.Background(), juror(), filmB, jury.RateInput{}, i18n.English)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, 5, repo.evaluations[key(filmB, jurorID)].Creativity)
}

func TestReopen(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	_, err := service.Reopen(context.Background(), juror(), filmA, i18n.English)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Submit(context.Background(), juror(), filmA, jury.RateInput{Technical: pointer.To(7)}, i18n.English)
	require.NoError(t, err)

	view, err := service.Reopen(context.Background(), juror(), filmA, i18n.English)
	require.NoError(t, err)
	assert.False(t, view.Submitted)
	assert.Equal(t, 7, view.Technical)

	view, err = service.Rate(context.Background(), juror(), filmA, jury.RateInput{Technical: pointer.To(3)}, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Technical)
}

// # HTTP

func serve(service *jury.Service, request *http.Request, identity *sec.Identity) *httptest.ResponseRecorder {
	ctx := ctxutil.WithLocale(request.Context(), i18n.English)
	if identity != nil {
		ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{
			UserID:     identity.UserID,
			Username:   identity.Username,
			Role:       string(identity.Role),
			FestivalID: identity.FestivalID,
		})
	}

	recorder := httptest.NewRecorder()
	jury.NewHandler(service).Routes().ServeHTTP(recorder, request.WithContext(ctx))
	return recorder
}

func TestHTTP_RequiresJury(t *testing.T) {
	service := newService(newMemoryRepo())
	visitor := sec.Identity{UserID: "v", Role: sec.RoleVisitor}
	admin := sec.Identity{UserID: "a", Role: sec.RoleAdmin, FestivalID: festivalID}

	tests := []struct {
		name     string
		identity *sec.Identity
		want     int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"visitor", &visitor, http.StatusForbidden},
		{"admin", &admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(service, httptest.NewRequest(http.MethodGet, "/films", nil), tt.identity)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestHTTP_RateAndSubmit(t *testing.T) {
	service := newService(newMemoryRepo())
	identity := juror()

	rated := serve(service, httptest.NewRequest(http.MethodPut, "/films/"+filmA+"/evaluation",
		strings.NewReader(`{"creativity":10,"technical":9,"narrative":8}`)), &identity)
	require.Equal(t, http.StatusOK, rated.Code)
	assert.Contains(t, rated.Body.String(), `"average":9`)
	assert.Contains(t, rated.Body.String(), `"label":"excellent"`)

	invalid := serve(service, httptest.NewRequest(http.MethodPut, "/films/"+filmA+"/evaluation",
		strings.NewReader(`{"creativity":12}`)), &identity)
	require.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Contains(t, invalid.Body.String(), "Must be between 1 and 10")

	submitted := serve(service, httptest.NewRequest(http.MethodPost, "/films/"+filmA+"/evaluation/submit", nil), &identity)
	require.Equal(t, http.StatusOK, submitted.Code)
	assert.Contains(t, submitted.Body.String(), `"submitted":true`)

	locked := serve(service, httptest.NewRequest(http.MethodPut, "/films/"+filmA+"/evaluation",
		strings.NewReader(`{"creativity":1}`)), &identity)
	assert.Equal(t, http.StatusConflict, locked.Code)

	listed := serve(service, httptest.NewRequest(http.MethodGet, "/films?rated_only=true", nil), &identity)
	require.Equal(t, http.StatusOK, listed.Code)

	var body struct {
		Data struct {
			Films []struct {
				SubmissionID string `json:"submission_id"`
				Rated        bool   `json:"rated"`
			} `json:"films"`
			Progress jury.Progress `json:"progress"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &body))
	require.Len(t, body.Data.Films, 1)
	assert.Equal(t, filmA, body.Data.Films[0].SubmissionID)
	assert.True(t, body.Data.Films[0].Rated)
	assert.Equal(t, jury.Progress{Rated: 1, Total: 2}, body.Data.Progress)
}
