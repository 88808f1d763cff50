// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"strconv"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
)

// # Steps

const (
	StepDirector     = 1
	StepFilm         = 2
	StepAIUsage      = 3
	StepDeliverables = 4
	StepTeam         = 5

	FirstStep = StepDirector
	LastStep  = StepTeam
)

// Eligibility and length limits.
const (
	MinimumAge         = 18
	MaxDurationSeconds = 60
	MaxSynopsisLength  = 300
	MaxAITextLength    = 500
	MaxStills          = 3
)

// # Field Paths

const (
	FieldCivility        = "director.civility"
	FieldFirstName       = "director.first_name"
	FieldLastName        = "director.last_name"
	FieldBirthDate       = "director.birth_date"
	FieldEmail           = "director.email"
	FieldMobile          = "director.mobile"
	FieldStreet          = "director.street"
	FieldPostalCode      = "director.postal_code"
	FieldCity            = "director.city"
	FieldCountry         = "director.country"
	FieldProfession      = "director.profession"
	FieldDiscoverySource = "director.discovery_source"

	FieldTitleOriginal    = "film.title_original"
	FieldTitleEnglish     = "film.title_english"
	FieldDuration         = "film.duration"
	FieldMainLanguage     = "film.main_language"
	FieldTags             = "film.tags"
	FieldSynopsisOriginal = "film.synopsis_original"
	FieldSynopsisEnglish  = "film.synopsis_english"

	FieldClassification = "ai_usage.classification"
	FieldTechStack      = "ai_usage.tech_stack"
	FieldMethodology    = "ai_usage.methodology"

	FieldVideoURL      = "deliverables.video_url"
	FieldSubtitlesFile = "deliverables.subtitles_file"
	FieldPosterFile    = "deliverables.poster_file"
	FieldStillsFiles   = "deliverables.stills_files"
)

// # Predicates

/*
ValidateStep checks the required conditions of one wizard step.

Description: A pure function of the draft and the clock. Step 5 (team) has
no requirements. Unknown steps report nothing.

Parameters:
  - step: int (1..5)
  - draft: *Draft
  - now: time.Time (reference date for the director's age)

Returns:
  - []apperr.FieldError: nil when the step is valid
*/
func ValidateStep(step int, draft *Draft, now time.Time) []apperr.FieldError {
	switch step {
	case StepDirector:
		return validateDirector(draft.Director, now)
	case StepFilm:
		return validateFilm(draft.Film)
	case StepAIUsage:
		return validateAIUsage(draft.AIUsage)
	case StepDeliverables:
		return validateDeliverables(draft.Deliverables)
	}
	return nil
}

// StepValid reports whether step has no field errors.
func StepValid(step int, draft *Draft, now time.Time) bool {
	return len(ValidateStep(step, draft, now)) == 0
}

// FirstInvalidStep returns the lowest step before limit that fails, with its
// errors, or 0 when steps 1..limit-1 are all valid.
func FirstInvalidStep(draft *Draft, now time.Time, limit int) (int, []apperr.FieldError) {
	for step := FirstStep; step < limit && step <= LastStep; step++ {
		if errs := ValidateStep(step, draft, now); len(errs) > 0 {
			return step, errs
		}
	}
	return 0, nil
}

func validateDirector(director Director, now time.Time) []apperr.FieldError {
	validator := &validate.Validator{}

	validator.Required(FieldCivility, string(director.Civility))
	if director.Civility != "" {
		validator.OneOf(FieldCivility, string(director.Civility), string(CivilityM), string(CivilityMme))
	}

	validator.Required(FieldFirstName, director.FirstName)
	validator.Required(FieldLastName, director.LastName)

	birthDate := strings.TrimSpace(director.BirthDate)
	switch {
	case birthDate == "":
		validator.Required(FieldBirthDate, director.BirthDate)
	case !isDate(birthDate):
		validator.Date(FieldBirthDate, birthDate)
	default:
		validator.Rule(FieldBirthDate, apperr.CodeAgeIneligible,
			Age(birthDate, now) < MinimumAge,
			"You must be at least 18 years old to submit a film")
	}

	validator.Required(FieldEmail, director.Email)
	validator.Required(FieldMobile, director.Mobile)
	validator.Required(FieldStreet, director.Street)
	validator.Required(FieldPostalCode, director.PostalCode)
	validator.Required(FieldCity, director.City)
	validator.Required(FieldCountry, director.Country)
	validator.Required(FieldProfession, director.Profession)

	validator.Required(FieldDiscoverySource, director.DiscoverySource)
	if director.DiscoverySource != "" {
		validator.OneOf(FieldDiscoverySource, director.DiscoverySource, DiscoverySources...)
	}

	return validator.Errors()
}

func validateFilm(film Film) []apperr.FieldError {
	validator := &validate.Validator{}

	validator.Required(FieldTitleOriginal, film.TitleOriginal)
	validator.Required(FieldTitleEnglish, film.TitleEnglish)

	if strings.TrimSpace(film.Duration) == "" {
		validator.Required(FieldDuration, film.Duration)
	} else {
		seconds, ok := DurationSeconds(film.Duration)
		validator.Custom(FieldDuration, !ok, "Must be a whole number of seconds")
		if ok {
			validator.Custom(FieldDuration, seconds > MaxDurationSeconds, "At most 60 seconds")
		}
	}

	validator.Required(FieldMainLanguage, film.MainLanguage)
	if film.MainLanguage != "" {
		validator.OneOf(FieldMainLanguage, film.MainLanguage, MainLanguages...)
	}

	validator.Custom(FieldTags, len(SplitTags(film.Tags)) == 0, "This field is required")

	validator.Required(FieldSynopsisOriginal, film.SynopsisOriginal).
		MaxLen(FieldSynopsisOriginal, film.SynopsisOriginal, MaxSynopsisLength)
	validator.Required(FieldSynopsisEnglish, film.SynopsisEnglish).
		MaxLen(FieldSynopsisEnglish, film.SynopsisEnglish, MaxSynopsisLength)

	return validator.Errors()
}

func validateAIUsage(usage AIUsage) []apperr.FieldError {
	validator := &validate.Validator{}

	validator.Required(FieldClassification, string(usage.Classification))
	if usage.Classification != "" {
		validator.OneOf(FieldClassification, string(usage.Classification),
			string(ClassificationFull), string(ClassificationHybrid))
	}

	validator.Required(FieldTechStack, usage.TechStack).MaxLen(FieldTechStack, usage.TechStack, MaxAITextLength)
	validator.Required(FieldMethodology, usage.Methodology).MaxLen(FieldMethodology, usage.Methodology, MaxAITextLength)

	return validator.Errors()
}

func validateDeliverables(deliverables Deliverables) []apperr.FieldError {
	validator := &validate.Validator{}

	// Handles such as "youtu.be/abc" are accepted; the link is checked by a human.
	validator.Required(FieldVideoURL, deliverables.VideoURL)
	validator.Required(FieldPosterFile, deliverables.PosterFile)

	if deliverables.HasSubtitles {
		validator.Required(FieldSubtitlesFile, deliverables.SubtitlesFile)
	}

	validator.Custom(FieldStillsFiles, len(deliverables.StillsFiles) > MaxStills, "At most 3 stills")

	return validator.Errors()
}

// # Derived Values

// Age is the director's age in full years at now. A birth date that is
// empty or not YYYY-MM-DD yields 0.
func Age(birthDate string, now time.Time) int {
	born, err := time.Parse(validate.DateLayout, strings.TrimSpace(birthDate))
	if err != nil {
		return 0
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return max(age, 0)
}

func isDate(value string) bool {
	_, err := time.Parse(validate.DateLayout, value)
	return err == nil
}

// DurationSeconds parses the form duration. Only plain non-negative integers parse.
func DurationSeconds(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "+-") {
		return 0, false
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return seconds, true
}

// SplitTags turns the comma-separated tag field into trimmed, non-empty tags.
func SplitTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
