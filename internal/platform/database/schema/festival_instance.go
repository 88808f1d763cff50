// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// FestivalInstanceTable represents the 'festival.instance' table
type FestivalInstanceTable struct {
	Table              string
	ID                 string
	Name               string
	Slug               string
	Year               string
	City               string
	Status             string
	LogoURL            string
	PrimaryColor       string
	YouTubeAPIKey      string
	SubmissionDeadline string
	EventDays          string
	CreatedAt          string
	UpdatedAt          string
}

// FestivalInstance is the schema definition for festival.instance
var FestivalInstance = FestivalInstanceTable{
	Table:              "festival.instance",
	ID:                 "id",
	Name:               "name",
	Slug:               "slug",
	Year:               "year",
	City:               "city",
	Status:             "status",
	LogoURL:            "logourl",
	PrimaryColor:       "primarycolor",
	YouTubeAPIKey:      "youtubeapikey",
	SubmissionDeadline: "submissiondeadline",
	EventDays:          "eventdays",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t FestivalInstanceTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Year, t.City, t.Status, t.LogoURL, t.PrimaryColor,
		t.YouTubeAPIKey, t.SubmissionDeadline, t.EventDays, t.CreatedAt, t.UpdatedAt,
	}
}
