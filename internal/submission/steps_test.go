// Copyright (c) 2026 marsAI. All rights reserved.

package submission_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/internal/submission"
)

func fields(errs []apperr.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, err := range errs {
		names = append(names, err.Field)
	}
	return names
}

func TestValidateStep_CompleteDraft(t *testing.T) {
	draft := completeDraft()
	for step := submission.FirstStep; step <= submission.LastStep; step++ {
		assert.Empty(t, submission.ValidateStep(step, draft, now), "step %d", step)
	}
}

/*
TestValidateStep_DirectorRequiredFields blanks each mandatory field of step 1
in turn and expects exactly that field to be reported.
*/
func TestValidateStep_DirectorRequiredFields(t *testing.T) {
	tests := []struct {
		field string
		clear func(*submission.Director)
	}{
		{submission.FieldFirstName, func(d *submission.Director) { d.FirstName = "" }},
		{submission.FieldLastName, func(d *submission.Director) { d.LastName = "  " }},
		{submission.FieldBirthDate, func(d *submission.Director) { d.BirthDate = "" }},
		{submission.FieldEmail, func(d *submission.Director) { d.Email = "" }},
		{submission.FieldMobile, func(d *submission.Director) { d.Mobile = "" }},
		{submission.FieldStreet, func(d *submission.Director) { d.Street = "" }},
		{submission.FieldPostalCode, func(d *submission.Director) { d.PostalCode = "" }},
		{submission.FieldCity, func(d *submission.Director) { d.City = "" }},
		{submission.FieldCountry, func(d *submission.Director) { d.Country = "" }},
		{submission.FieldProfession, func(d *submission.Director) { d.Profession = "" }},
		{submission.FieldDiscoverySource, func(d *submission.Director) { d.DiscoverySource = "" }},
		{submission.FieldCivility, func(d *submission.Director) { d.Civility = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			draft := completeDraft()
			tt.clear(&draft.Director)

			errs := submission.ValidateStep(submission.StepDirector, draft, now)
			assert.Equal(t, []string{tt.field}, fields(errs))
		})
	}
}

func TestValidateStep_DirectorOptionalFields(t *testing.T) {
	draft := completeDraft()
	draft.Director.YouTubeURL = ""
	draft.Director.Newsletter = false
	assert.True(t, submission.StepValid(submission.StepDirector, draft, now))

	// Social profiles are free text: handles and bare hosts are accepted.
	draft.Director.InstagramURL = "@lea.martin"
	draft.Director.XURL = "x.com/leamartin"
	draft.Director.LinkedInURL = "Léa Martin (LinkedIn)"
	assert.True(t, submission.StepValid(submission.StepDirector, draft, now))
}

/*
TestValidateStep_Age checks the 18-year threshold against a fixed clock
(2026-03-01).
*/
func TestValidateStep_Age(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		wantRule  string
	}{
		{"eighteenth birthday today", "2008-03-01", ""},
		{"turns 18 tomorrow", "2008-03-02", apperr.CodeAgeIneligible},
		{"adult", "1990-05-17", ""},
		{"minor", "2012-01-01", apperr.CodeAgeIneligible},
		{"unparseable", "01/03/1990", validate.RuleDate},
		{"impossible day", "1990-02-30", validate.RuleDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			draft.Director.BirthDate = tt.birthDate

			errs := submission.ValidateStep(submission.StepDirector, draft, now)
			if tt.wantRule == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, submission.FieldBirthDate, errs[0].Field)
			assert.Equal(t, tt.wantRule, errs[0].Rule)
		})
	}
}

func TestAge(t *testing.T) {
	assert.Equal(t, 18, submission.Age("2008-03-01", now))
	assert.Equal(t, 17, submission.Age("2008-03-02", now))
	assert.Equal(t, 35, submission.Age("1990-05-17", now))
	assert.Equal(t, 0, submission.Age("", now))
	assert.Equal(t, 0, submission.Age("2030-01-01", now))
}

func TestValidateStep_FilmDuration(t *testing.T) {
	tests := []struct {
		duration string
		valid    bool
	}{
		{"60", true},
		{"1", true},
		{" 45 ", true},
		{"61", false},
		{"65", false},
		{"0", true},
		{"-5", false},
		{"1.5", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			draft := completeDraft()
			draft.Film.Duration = tt.duration

			errs := submission.ValidateStep(submission.StepFilm, draft, now)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.Equal(t, []string{submission.FieldDuration}, fields(errs))
			}
		})
	}
}

func TestValidateStep_FilmSynopsisLength(t *testing.T) {
	draft := completeDraft()
	draft.Film.SynopsisOriginal = strings.Repeat("é", submission.MaxSynopsisLength)
	assert.True(t, submission.StepValid(submission.StepFilm, draft, now))

	draft.Film.SynopsisEnglish = strings.Repeat("a", submission.MaxSynopsisLength+1)
	assert.Equal(t, []string{submission.FieldSynopsisEnglish}, fields(submission.ValidateStep(submission.StepFilm, draft, now)))
}

func TestValidateStep_FilmTags(t *testing.T) {
	draft := completeDraft()
	draft.Film.Tags = " , ,"
	assert.Equal(t, []string{submission.FieldTags}, fields(submission.ValidateStep(submission.StepFilm, draft, now)))
}

func TestValidateStep_AIUsage(t *testing.T) {
	draft := completeDraft()
	draft.AIUsage.Classification = "partial"
	draft.AIUsage.Methodology = strings.Repeat("m", submission.MaxAITextLength+1)

	assert.ElementsMatch(t,
		[]string{submission.FieldClassification, submission.FieldMethodology},
		fields(submission.ValidateStep(submission.StepAIUsage, draft, now)))
}

func TestValidateStep_Deliverables(t *testing.T) {
	t.Run("subtitles required when declared", func(t *testing.T) {
		draft := completeDraft()
		draft.Deliverables.HasSubtitles = true
		assert.Equal(t, []string{submission.FieldSubtitlesFile}, fields(submission.ValidateStep(submission.StepDeliverables, draft, now)))

		draft.Deliverables.SubtitlesFile = "drafts/x/subtitles/s.srt"
		assert.True(t, submission.StepValid(submission.StepDeliverables, draft, now))
	})

	t.Run("poster and video required", func(t *testing.T) {
		draft := completeDraft()
		draft.Deliverables.PosterFile = ""
		draft.Deliverables.VideoURL = ""
		assert.ElementsMatch(t,
			[]string{submission.FieldVideoURL, submission.FieldPosterFile},
			fields(submission.ValidateStep(submission.StepDeliverables, draft, now)))
	})

	t.Run("video link without scheme", func(t *testing.T) {
		draft := completeDraft()
		draft.Deliverables.VideoURL = "youtu.be/abc123"
		assert.True(t, submission.StepValid(submission.StepDeliverables, draft, now))
	})
}

func TestValidateStep_TeamAlwaysValid(t *testing.T) {
	draft := submission.NewDraft("d", now)
	assert.True(t, submission.StepValid(submission.StepTeam, draft, now))
}

func TestFirstInvalidStep(t *testing.T) {
	draft := completeDraft()
	step, errs := submission.FirstInvalidStep(draft, now, submission.LastStep)
	assert.Zero(t, step)
	assert.Empty(t, errs)

	draft.AIUsage.TechStack = ""
	draft.Deliverables.PosterFile = ""
	step, errs = submission.FirstInvalidStep(draft, now, submission.LastStep)
	assert.Equal(t, submission.StepAIUsage, step)
	assert.Equal(t, []string{submission.FieldTechStack}, fields(errs))

	step, _ = submission.FirstInvalidStep(draft, now, submission.StepAIUsage)
	assert.Zero(t, step)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"mer", "mémoire"}, submission.SplitTags(" mer ,, mémoire,"))
	assert.Empty(t, submission.SplitTags(""))
}
