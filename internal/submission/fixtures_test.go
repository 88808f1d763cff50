// Copyright (c) 2026 marsAI. All rights reserved.

package submission_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/queue"
	"github.com/marsai/festival/internal/submission"
)

// now is the reference clock of every test: the director born on
// 2008-03-01 turns 18 that day.
var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// completeDraft returns a draft whose steps 1 to 4 all validate, parked on step 5.
func completeDraft() *submission.Draft {
	draft := submission.NewDraft("0190a8a2-0000-7000-8000-000000000001", now)
	draft.Step = submission.StepTeam
	draft.Director = submission.Director{
		Civility:        submission.CivilityMme,
		FirstName:       "Léa",
		LastName:        "Martin",
		BirthDate:       "1990-05-17",
		Email:           "lea@example.com",
		Mobile:          "+33600000000",
		Street:          "1 quai du Port",
		PostalCode:      "13002",
		City:            "Marseille",
		Country:         "France",
		Profession:      "Réalisatrice",
		DiscoverySource: "festival",
	}
	draft.Film = submission.Film{
		TitleOriginal:    "Les Marées",
		TitleEnglish:     "The Tides",
		Duration:         "58",
		MainLanguage:     "fr",
		Tags:             "mer, mémoire",
		SynopsisOriginal: "Une ville qui rêve de la mer.",
		SynopsisEnglish:  "A city dreaming of the sea.",
	}
	draft.AIUsage = submission.AIUsage{
		Classification: submission.ClassificationHybrid,
		TechStack:      "Runway, Suno",
		Methodology:    "Prises de vue réelles augmentées.",
	}
	draft.Deliverables = submission.Deliverables{
		VideoURL:    "https://vimeo.com/123",
		PosterFile:  "drafts/x/poster/p.jpg",
		StillsFiles: []string{},
	}
	return draft
}

// # Fakes

type memoryDrafts struct {
	mu        sync.Mutex
	drafts    map[string][]byte
	saves     int
	deleteErr error
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[string][]byte{}}
}

func (store *memoryDrafts) Save(_ context.Context, draft *submission.Draft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	store.drafts[draft.ID] = payload
	store.saves++
	return nil
}

func (store *memoryDrafts) Load(_ context.Context, id string) (*submission.Draft, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	payload, ok := store.drafts[id]
	if !ok {
		return nil, apperr.NotFound("Draft")
	}
	draft := &submission.Draft{}
	return draft, json.Unmarshal(payload, draft)
}

func (store *memoryDrafts) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.deleteErr != nil {
		return store.deleteErr
	}
	delete(store.drafts, id)
	return nil
}

func (store *memoryDrafts) get(id string) *submission.Draft {
	draft, err := store.Load(context.Background(), id)
	if err != nil {
		return nil
	}
	return draft
}

type memoryRepo struct {
	mu           sync.Mutex
	submissions  map[string]*submission.Submission
	acknowledged map[string]time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{submissions: map[string]*submission.Submission{}, acknowledged: map[string]time.Time{}}
}

func (repo *memoryRepo) Create(_ context.Context, s *submission.Submission) (*submission.Submission, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.submissions {
		if stored.DraftID == s.DraftID {
			clone := *stored
			return &clone, nil
		}
	}
	repo.submissions[s.ID] = s
	return s, nil
}

func (repo *memoryRepo) FindByID(_ context.Context, id string) (*submission.Submission, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	s, ok := repo.submissions[id]
	if !ok {
		return nil, apperr.NotFound("Submission")
	}
	clone := *s
	return &clone, nil
}

func (repo *memoryRepo) MarkAcknowledged(_ context.Context, id string, at time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	s, ok := repo.submissions[id]
	if !ok || s.AcknowledgedAt != nil {
		return false, nil
	}
	s.AcknowledgedAt = &at
	repo.acknowledged[id] = at
	return true, nil
}

func (repo *memoryRepo) ListUnacknowledged(_ context.Context, cutoff time.Time, limit int) ([]*submission.Submission, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	pending := make([]*submission.Submission, 0)
	for _, s := range repo.submissions {
		if s.AcknowledgedAt == nil && s.SubmittedAt.Before(cutoff) {
			clone := *s
			pending = append(pending, &clone)
		}
	}
	slices.SortFunc(pending, func(a, b *submission.Submission) int { return a.SubmittedAt.Compare(b.SubmittedAt) })
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

type memoryMedia struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemoryMedia() *memoryMedia {
	return &memoryMedia{objects: map[string][]byte{}, types: map[string]string{}}
}

func (media *memoryMedia) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return err
	}
	media.mu.Lock()
	defer media.mu.Unlock()
	media.objects[key] = buffer.Bytes()
	media.types[key] = contentType
	return nil
}

func (media *memoryMedia) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://media.test/" + key + "?signed", nil
}

func (media *memoryMedia) Remove(_ context.Context, key string) error {
	media.mu.Lock()
	defer media.mu.Unlock()
	delete(media.objects, key)
	return nil
}

func (media *memoryMedia) count() int {
	media.mu.Lock()
	defer media.mu.Unlock()
	return len(media.objects)
}

type fixedFestivals struct {
	festival *festival.Festival
}

func (festivals fixedFestivals) OpenForSubmissions(context.Context) (*festival.Festival, error) {
	if festivals.festival == nil || !festivals.festival.AcceptsSubmissions(now) {
		return nil, apperr.SubmissionsClosed()
	}
	return festivals.festival, nil
}

type recordingHandoff struct {
	mu       sync.Mutex
	payloads []queue.HandoffPayload
	err      error
}

func (handoff *recordingHandoff) EnqueueHandoff(_ context.Context, payload queue.HandoffPayload) error {
	handoff.mu.Lock()
	defer handoff.mu.Unlock()
	if handoff.err != nil {
		return handoff.err
	}
	handoff.payloads = append(handoff.payloads, payload)
	return nil
}

// # Harness

type harness struct {
	service  *submission.Service
	drafts   *memoryDrafts
	repo     *memoryRepo
	media    *memoryMedia
	handoff  *recordingHandoff
	festival *festival.Festival
}

func newHarness() *harness {
	h := &harness{
		drafts:   newMemoryDrafts(),
		repo:     newMemoryRepo(),
		media:    newMemoryMedia(),
		handoff:  &recordingHandoff{},
		festival: &festival.Festival{ID: "fest-2026", Status: festival.StatusActive},
	}
	h.service = submission.NewService(submission.Dependencies{
		Drafts:    h.drafts,
		Repo:      h.repo,
		Media:     h.media,
		Festivals: fixedFestivals{festival: h.festival},
		Handoff:   h.handoff,
		Logger:    discardLogger(),
		Now:       clock,
	})
	return h
}

// seed stores draft and returns its ID.
func (h *harness) seed(draft *submission.Draft) string {
	if err := h.drafts.Save(context.Background(), draft); err != nil {
		panic(err)
	}
	return draft.ID
}
