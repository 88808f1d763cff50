// Copyright (c) 2026 marsAI. All rights reserved.

package festival

import (
	"time"
)

// # Lifecycle

// Status is the publication state of a festival instance.
type Status string

const (
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
	StatusArchived Status = "archived"
)

// Defaults applied to new instances.
const (
	DefaultPrimaryColor = "#00F2FF"
)

// DefaultEventDays are the screening days of the 2026 Marseille edition.
var DefaultEventDays = []string{"2026-06-12", "2026-06-13"}

// # JSON Field Names

const (
	FieldName               = "name"
	FieldSlug               = "slug"
	FieldYear               = "year"
	FieldCity               = "city"
	FieldLogoURL            = "logo_url"
	FieldPrimaryColor       = "primary_color"
	FieldYouTubeAPIKey      = "youtube_api_key"
	FieldSubmissionDeadline = "submission_deadline"
	FieldEventDays          = "event_days"
)

// # Domain Entity

// Festival is one tenant of the platform: a city and year edition.
//
// The YouTube API key is a secret of the super admin CMS and is only
// serialized through [AdminView].
type Festival struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Year               int        `json:"year"`
	City               string     `json:"city"`
	Status             Status     `json:"status"`
	LogoURL            string     `json:"logo_url"`
	PrimaryColor       string     `json:"primary_color"`
	YouTubeAPIKey      string     `json:"-"`
	SubmissionDeadline *time.Time `json:"submission_deadline,omitempty"`
	EventDays          []string   `json:"event_days"`
	SubmissionsCount   int        `json:"submissions_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// AcceptsSubmissions reports whether the festival takes new films at now.
// The deadline itself is still open.
func (festival *Festival) AcceptsSubmissions(now time.Time) bool {
	if festival.Status != StatusActive {
		return false
	}
	return festival.SubmissionDeadline == nil || !now.After(*festival.SubmissionDeadline)
}

// HasEventDay reports whether day (YYYY-MM-DD) is one of the festival's event days.
func (festival *Festival) HasEventDay(day string) bool {
	for _, candidate := range festival.EventDays {
		if candidate == day {
			return true
		}
	}
	return false
}

// AdminView is the super admin serialization, secrets included.
type AdminView struct {
	*Festival
	YouTubeAPIKey string `json:"youtube_api_key"`
}

// ForAdmin wraps the festival for super admin responses.
func (festival *Festival) ForAdmin() AdminView {
	return AdminView{Festival: festival, YouTubeAPIKey: festival.YouTubeAPIKey}
}

// # Inputs

// CreateInput carries the fields of a new festival instance.
type CreateInput struct {
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	Year               int        `json:"year"`
	City               string     `json:"city"`
	LogoURL            string     `json:"logo_url"`
	PrimaryColor       string     `json:"primary_color"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	EventDays          []string   `json:"event_days"`
}

// UpdateInput is a partial update: nil fields are left untouched.
type UpdateInput struct {
	Name               *string    `json:"name"`
	Slug               *string    `json:"slug"`
	Year               *int       `json:"year"`
	City               *string    `json:"city"`
	SubmissionDeadline *time.Time `json:"submission_deadline"`
	ClearDeadline      bool       `json:"clear_deadline"`
	EventDays          []string   `json:"event_days"`
}

// BrandingInput updates the visual identity of a festival.
type BrandingInput struct {
	LogoURL       *string `json:"logo_url"`
	PrimaryColor  *string `json:"primary_color"`
	YouTubeAPIKey *string `json:"youtube_api_key"`
}
