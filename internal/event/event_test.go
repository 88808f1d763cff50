// Copyright (c) 2026 marsAI. All rights reserved.

package event_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/event"
	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/ctxutil"
	"github.com/marsai/festival/internal/platform/i18n"
)

const festivalID = "0190a8a2-0000-7000-8000-0000000000f1"

var now = time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)

// # Fakes

type memoryRepo struct {
	mu            sync.Mutex
	registrations []*event.Registration
	extra         map[event.ID]int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{extra: map[event.ID]int{}}
}

func (repo *memoryRepo) reserved(festivalID string) map[event.ID]int {
	counts := make(map[event.ID]int)
	for id, count := range repo.extra {
		counts[id] = count
	}
	for _, registration := range repo.registrations {
		if registration.FestivalID != festivalID {
			continue
		}
		for _, booking := range registration.Bookings {
			counts[booking.EventID]++
		}
	}
	return counts
}

func (repo *memoryRepo) Reserved(_ context.Context, festivalID string) (map[event.ID]int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.reserved(festivalID), nil
}

func (repo *memoryRepo) Register(_ context.Context, registration *event.Registration, capacities map[event.ID]int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	counts := repo.reserved(registration.FestivalID)
	for _, booking := range registration.Bookings {
		for _, existing := range repo.registrations {
			if existing.Email != registration.Email {
				continue
			}
			for _, taken := range existing.Bookings {
				if taken.EventID == booking.EventID {
					return apperr.Conflict("You are already registered for this event")
				}
			}
		}
		if counts[booking.EventID] >= capacities[booking.EventID] {
			return apperr.Unprocessable("This event is full")
		}
	}

	repo.registrations = append(repo.registrations, registration)
	return nil
}

func (repo *memoryRepo) Cancel(_ context.Context, festivalID, email string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	freed := 0
	kept := repo.registrations[:0]
	for _, registration := range repo.registrations {
		if registration.FestivalID == festivalID && registration.Email == email {
			freed += len(registration.Bookings)
			continue
		}
		kept = append(kept, registration)
	}
	repo.registrations = kept

	if freed == 0 {
		return 0, apperr.NotFound("Registration")
	}
	return freed, nil
}

type fixedFestivals struct {
	active *festival.Festival
}

func (festivals fixedFestivals) Active(context.Context) (*festival.Festival, error) {
	return festivals.active, nil
}

func (festivals fixedFestivals) GetFestival(_ context.Context, identifier string) (*festival.Festival, error) {
	if identifier == festivals.active.ID || identifier == festivals.active.Slug {
		return festivals.active, nil
	}
	return nil, apperr.NotFound("Festival")
}

func newService(repo *memoryRepo, days ...string) *event.Service {
	active := &festival.Festival{ID: festivalID, Slug: "marsai-2026", EventDays: days}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return event.NewService(repo, fixedFestivals{active: active}, logger, func() time.Time { return now })
}

func validInput() event.RegistrationInput {
	return event.RegistrationInput{
		FirstName: "Nadia",
		LastName:  "Benali",
		Email:     "  Nadia.Benali@Example.org ",
		Phone:     "+33 6 12 34 56 78",
		Bookings: []event.Booking{
			{EventID: event.ClosingCeremony, Date: "2026-06-13", Time: "19:30"},
			{EventID: event.Contest, Date: "2026-06-12", Time: "14:00"},
		},
	}
}

// # Catalog

func TestCatalog(t *testing.T) {
	want := map[event.ID]int{
		event.Contest:         500,
		event.Masterclass:     200,
		event.Conferences:     800,
		event.ClosingCeremony: 1000,
	}
	if diff := cmp.Diff(want, event.Capacities()); diff != "" {
		t.Errorf("Capacities mismatch (-want +got):\n%s", diff)
	}

	conferences, ok := event.Lookup(event.Conferences)
	require.True(t, ok)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}, conferences.Slots)

	_, ok = event.Lookup("afterparty")
	assert.False(t, ok)
}

func TestSeatsOf(t *testing.T) {
	assert.Equal(t, event.Seats{Total: 200, Reserved: 12, Available: 188}, event.SeatsOf(200, 12))
	assert.Equal(t, event.Seats{Total: 200, Reserved: 201, Available: 0}, event.SeatsOf(200, 201))
}

func TestProgramme(t *testing.T) {
	repo := newMemoryRepo()
	repo.extra[event.Masterclass] = 150
	service := newService(repo)

	programme, err := service.Programme(context.Background(), "", i18n.French)
	require.NoError(t, err)

	assert.Equal(t, festivalID, programme.FestivalID)
	assert.Equal(t, festival.DefaultEventDays, programme.EventDays)
	require.Len(t, programme.Events, 4)
	assert.Equal(t, "Concours de Films", programme.Events[0].Title)
	assert.Equal(t, event.Seats{Total: 200, Reserved: 150, Available: 50}, programme.Events[1].Seats)
	assert.True(t, programme.Events[3].Featured)

	english, err := service.Programme(context.Background(), "marsai-2026", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "Film Contest", english.Events[0].Title)

	_, err = service.Programme(context.Background(), "unknown", i18n.English)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

// # Registration

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*event.RegistrationInput)
		field  string
	}{
		{"first name", func(input *event.RegistrationInput) { input.FirstName = " " }, "first_name"},
		{"phone", func(input *event.RegistrationInput) { input.Phone = "" }, "phone"},
		{"no bookings", func(input *event.RegistrationInput) { input.Bookings = nil }, "bookings"},
		{"unknown event", func(input *event.RegistrationInput) { input.Bookings[0].EventID = "afterparty" }, "bookings[0].event_id"},
		{"day outside festival", func(input *event.RegistrationInput) { input.Bookings[1].Date = "2026-06-14" }, "bookings[1].date"},
		{"slot of another event", func(input *event.RegistrationInput) { input.Bookings[1].Time = "19:30" }, "bookings[1].time"},
		{"same event twice", func(input *event.RegistrationInput) {
			input.Bookings[1] = event.Booking{EventID: event.ClosingCeremony, Date: "2026-06-12", Time: "20:00"}
		}, "bookings[1].event_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			input := validInput()
			tt.mutate(&input)

			_, err := newService(repo).Register(context.Background(), "", input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, repo.registrations)
		})
	}
}

func TestRegister_FestivalDays(t *testing.T) {
	input := validInput()
	input.Bookings = []event.Booking{{EventID: event.Contest, Date: "2027-06-11", Time: "14:30"}}

	_, err := newService(newMemoryRepo(), "2027-06-11").Register(context.Background(), "", input)
	require.NoError(t, err)

	_, err = newService(newMemoryRepo()).Register(context.Background(), "", input)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestRegister(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	registration, err := service.Register(context.Background(), "", validInput())
	require.NoError(t, err)

	assert.Equal(t, "nadia.benali@example.org", registration.Email)
	assert.Equal(t, festivalID, registration.FestivalID)
	assert.Equal(t, now, registration.CreatedAt)
	assert.Len(t, repo.registrations, 1)

	programme, err := service.Programme(context.Background(), "", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 1, programme.Events[0].Seats.Reserved)
	assert.Equal(t, 999, programme.Events[3].Seats.Available)
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)

	_, err := service.Register(context.Background(), "", validInput())
	require.NoError(t, err)

	again := validInput()
	again.Email = "NADIA.BENALI@example.org"
	again.Bookings = again.Bookings[1:]
	_, err = service.Register(context.Background(), "", again)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestRegister_Full(t *testing.T) {
	repo := newMemoryRepo()
	repo.extra[event.Contest] = 500

	_, err := newService(repo).Register(context.Background(), "", validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
	assert.Empty(t, repo.registrations)
}

func TestCancel(t *testing.T) {
	repo := newMemoryRepo()
	service := newService(repo)
	ctx := context.Background()

	_, err := service.Cancel(ctx, "", "not-an-email")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Cancel(ctx, "", "nobody@example.org")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Register(ctx, "", validInput())
	require.NoError(t, err)

	result, err := service.Cancel(ctx, "", " Nadia.Benali@example.org")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Freed)
	assert.Empty(t, repo.registrations)
}

// # HTTP

func serve(service *event.Service, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request = request.WithContext(ctxutil.WithLocale(request.Context(), i18n.English))

	recorder := httptest.NewRecorder()
	event.NewHandler(service).Routes().ServeHTTP(recorder, request)
	return recorder
}

func TestHTTP_RegistrationFlow(t *testing.T) {
	service := newService(newMemoryRepo())

	created := serve(service, http.MethodPost, "/registrations", `{
		"first_name": "Nadia", "last_name": "Benali", "email": "nadia@example.org", "phone": "0612345678",
		"bookings": [{"event_id": "masterclass", "date": "2026-06-12", "time": "10:30"}]
	}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Contains(t, created.Body.String(), `"event_id":"masterclass"`)

	duplicate := serve(service, http.MethodPost, "/registrations", `{
		"first_name": "Nadia", "last_name": "Benali", "email": "nadia@example.org", "phone": "0612345678",
		"bookings": [{"event_id": "masterclass", "date": "2026-06-13", "time": "11:00"}]
	}`)
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	listed := serve(service, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, listed.Code)

	var body struct {
		Data event.Programme `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &body))
	assert.Equal(t, event.Seats{Total: 200, Reserved: 1, Available: 199}, body.Data.Events[1].Seats)

	cancelled := serve(service, http.MethodPost, "/registrations/cancel", `{"email":"nadia@example.org"}`)
	require.Equal(t, http.StatusOK, cancelled.Code)
	assert.JSONEq(t, `{"data":{"freed":1}}`, cancelled.Body.String())
}

func TestHTTP_RegisterValidation(t *testing.T) {
	recorder := serve(newService(newMemoryRepo()), http.MethodPost, "/registrations", `{"bookings": []}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Select at least one event")
}
