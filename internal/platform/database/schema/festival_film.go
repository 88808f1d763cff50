// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// FestivalFilmTable represents the 'festival.film' table
type FestivalFilmTable struct {
	Table             string
	ID                string
	FestivalID        string
	SubmissionID      string
	Title             string
	TitleEnglish      string
	Director          string
	Country           string
	Category          string
	AITools           string
	OfficialSelection string
	DurationSeconds   string
	ThumbnailURL      string
	VideoURL          string
	PublishedAt       string
}

// FestivalFilm is the schema definition for festival.film
var FestivalFilm = FestivalFilmTable{
	Table:             "festival.film",
	ID:                "id",
	FestivalID:        "festivalid",
	SubmissionID:      "submissionid",
	Title:             "title",
	TitleEnglish:      "titleenglish",
	Director:          "director",
	Country:           "country",
	Category:          "category",
	AITools:           "aitools",
	OfficialSelection: "officialselection",
	DurationSeconds:   "durationseconds",
	ThumbnailURL:      "thumbnailurl",
	VideoURL:          "videourl",
	PublishedAt:       "publishedat",
}

func (t FestivalFilmTable) Columns() []string {
	return []string{
		t.ID, t.FestivalID, t.SubmissionID, t.Title, t.TitleEnglish, t.Director, t.Country, t.Category,
		t.AITools, t.OfficialSelection, t.DurationSeconds, t.ThumbnailURL, t.VideoURL, t.PublishedAt,
	}
}
