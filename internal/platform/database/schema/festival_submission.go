// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// FestivalSubmissionTable represents the 'festival.submission' table
type FestivalSubmissionTable struct {
	Table           string
	ID              string
	FestivalID      string
	DraftID         string
	Status          string
	Title           string
	TitleEnglish    string
	Director        string
	Email           string
	Country         string
	DurationSeconds string
	Classification  string
	Draft           string
	SubmittedAt     string
	AcknowledgedAt  string
	UpdatedAt       string
}

// FestivalSubmission is the schema definition for festival.submission
var FestivalSubmission = FestivalSubmissionTable{
	Table:           "festival.submission",
	ID:              "id",
	FestivalID:      "festivalid",
	DraftID:         "draftid",
	Status:          "status",
	Title:           "title",
	TitleEnglish:    "titleenglish",
	Director:        "director",
	Email:           "email",
	Country:         "country",
	DurationSeconds: "durationseconds",
	Classification:  "classification",
	Draft:           "draft",
	SubmittedAt:     "submittedat",
	AcknowledgedAt:  "acknowledgedat",
	UpdatedAt:       "updatedat",
}

func (t FestivalSubmissionTable) Columns() []string {
	return []string{
		t.ID, t.FestivalID, t.DraftID, t.Status, t.Title, t.TitleEnglish, t.Director, t.Email, t.Country,
		t.DurationSeconds, t.Classification, t.Draft, t.SubmittedAt, t.AcknowledgedAt, t.UpdatedAt,
	}
}
