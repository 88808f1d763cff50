// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import "time"

// Status is the review state of a received submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is a known review state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusRejected:
		return true
	}
	return false
}

// Submission is a draft that passed final validation, frozen for review.
type Submission struct {
	ID              string         `json:"id"`
	FestivalID      string         `json:"festival_id"`
	DraftID         string         `json:"-"`
	Status          Status         `json:"status"`
	Title           string         `json:"title"`
	TitleEnglish    string         `json:"title_english"`
	Director        string         `json:"director"`
	Email           string         `json:"email"`
	Country         string         `json:"country"`
	DurationSeconds int            `json:"duration_seconds"`
	Classification  Classification `json:"classification"`
	Draft           *Draft         `json:"draft,omitempty"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	AcknowledgedAt  *time.Time     `json:"acknowledged_at,omitempty"`
}

// FromDraft freezes a submittable draft. The draft must already have
// passed [Draft.CheckSubmittable].
func FromDraft(id, festivalID string, draft *Draft, now time.Time) *Submission {
	seconds, _ := DurationSeconds(draft.Film.Duration)

	return &Submission{
		ID:              id,
		FestivalID:      festivalID,
		DraftID:         draft.ID,
		Status:          StatusPending,
		Title:           draft.Film.TitleOriginal,
		TitleEnglish:    draft.Film.TitleEnglish,
		Director:        draft.Director.FullName(),
		Email:           draft.Director.Email,
		Country:         draft.Director.Country,
		DurationSeconds: seconds,
		Classification:  draft.AIUsage.Classification,
		Draft:           draft,
		SubmittedAt:     now,
	}
}

// Confirmation is the summary shown once a film has been submitted.
type Confirmation struct {
	SubmissionID   string         `json:"submission_id"`
	Title          string         `json:"title"`
	TitleEnglish   string         `json:"title_english"`
	Director       string         `json:"director"`
	Email          string         `json:"email"`
	Duration       int            `json:"duration_seconds"`
	Classification Classification `json:"classification"`
	Collaborators  int            `json:"collaborators"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

// Confirm builds the confirmation summary of a received submission.
func (submission *Submission) Confirm() Confirmation {
	collaborators := 0
	if submission.Draft != nil {
		collaborators = len(submission.Draft.Collaborators)
	}
	return Confirmation{
		SubmissionID:   submission.ID,
		Title:          submission.Title,
		TitleEnglish:   submission.TitleEnglish,
		Director:       submission.Director,
		Email:          submission.Email,
		Duration:       submission.DurationSeconds,
		Classification: submission.Classification,
		Collaborators:  collaborators,
		SubmittedAt:    submission.SubmittedAt,
	}
}
