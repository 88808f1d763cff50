// Copyright (c) 2026 marsAI. All rights reserved.

package jury

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/platform/i18n"
)

// Score bounds of each criterion.
const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5

	maxCommentLength = 2000
)

// Evaluation is one juror's scores for one film.
type Evaluation struct {
	SubmissionID string    `json:"submission_id"`
	JurorID      string    `json:"juror_id"`
	Creativity   int       `json:"creativity"`
	Technical    int       `json:"technical"`
	Narrative    int       `json:"narrative"`
	Comment      string    `json:"comment"`
	Submitted    bool      `json:"submitted"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewEvaluation returns the neutral 5/5/5 evaluation a juror starts from.
func NewEvaluation(submissionID, jurorID string, now time.Time) *Evaluation {
	return &Evaluation{
		SubmissionID: submissionID,
		JurorID:      jurorID,
		Creativity:   DefaultScore,
		Technical:    DefaultScore,
		Narrative:    DefaultScore,
		UpdatedAt:    now,
	}
}

// Average is the rounded mean of the three criteria.
func (evaluation *Evaluation) Average() int {
	return int(math.Round(float64(evaluation.Creativity+evaluation.Technical+evaluation.Narrative) / 3))
}

// # Rating Labels

// Label qualifies a score on the 1..10 scale.
type Label string

const (
	LabelPoor      Label = "poor"
	LabelAverage   Label = "average"
	LabelExcellent Label = "excellent"
)

var labelTexts = map[Label]i18n.Text{
	LabelPoor:      {FR: "Faible", EN: "Poor"},
	LabelAverage:   {FR: "Moyen", EN: "Average"},
	LabelExcellent: {FR: "Excellent", EN: "Excellent"},
}

// LabelFor maps a score to its label: up to 3 is poor, up to 7 average.
func LabelFor(score int) Label {
	switch {
	case score <= 3:
		return LabelPoor
	case score <= 7:
		return LabelAverage
	}
	return LabelExcellent
}

// In returns the label text in the given locale.
func (label Label) In(tag language.Tag) string {
	return labelTexts[label].In(tag)
}

// # Workspace

// AssignedFilm is a validated submission of the juror's festival, with the
// juror's own evaluation when one exists.
type AssignedFilm struct {
	SubmissionID    string      `json:"submission_id"`
	Title           string      `json:"title"`
	TitleEnglish    string      `json:"title_english"`
	Director        string      `json:"director"`
	Country         string      `json:"country"`
	DurationSeconds int         `json:"duration_seconds"`
	Classification  string      `json:"classification"`
	VideoURL        string      `json:"video_url"`
	Synopsis        string      `json:"synopsis"`
	SynopsisEnglish string      `json:"synopsis_english"`
	Evaluation      *Evaluation `json:"-"`
}

// Rated reports whether the juror has submitted an evaluation of the film.
func (film AssignedFilm) Rated() bool {
	return film.Evaluation != nil && film.Evaluation.Submitted
}

// Filter narrows the juror's film list.
type Filter struct {
	Query       string
	RatedOnly   bool
	UnratedOnly bool
}

// Matches applies a case-insensitive search on title and director and the
// rated/unrated toggles. Both toggles together match nothing.
func (filter Filter) Matches(film AssignedFilm) bool {
	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		if !strings.Contains(strings.ToLower(film.Title), query) &&
			!strings.Contains(strings.ToLower(film.Director), query) {
			return false
		}
	}
	if filter.RatedOnly && !film.Rated() {
		return false
	}
	return !filter.UnratedOnly || !film.Rated()
}

// Progress counts submitted evaluations over assigned films.
type Progress struct {
	Rated int `json:"rated"`
	Total int `json:"total"`
}

// ProgressOf computes the juror's progress over every assigned film.
func ProgressOf(films []AssignedFilm) Progress {
	rated := 0
	for _, film := range films {
		if film.Rated() {
			rated++
		}
	}
	return Progress{Rated: rated, Total: len(films)}
}

// EvaluationView is an evaluation with its derived score.
type EvaluationView struct {
	*Evaluation
	Average int    `json:"average"`
	Label   Label  `json:"label"`
	Verdict string `json:"verdict"`
}

// View derives the average and its label in the given locale.
func (evaluation *Evaluation) View(tag language.Tag) *EvaluationView {
	average := evaluation.Average()
	label := LabelFor(average)
	return &EvaluationView{Evaluation: evaluation, Average: average, Label: label, Verdict: label.In(tag)}
}

// FilmView is one entry of the workspace list. Films without an evaluation
// show the neutral defaults.
type FilmView struct {
	AssignedFilm
	Rated      bool            `json:"rated"`
	Evaluation *EvaluationView `json:"evaluation"`
}

func presentFilms(films []AssignedFilm, jurorID string, now time.Time, tag language.Tag) []FilmView {
	views := make([]FilmView, 0, len(films))
	for _, film := range films {
		evaluation := film.Evaluation
		if evaluation == nil {
			evaluation = NewEvaluation(film.SubmissionID, jurorID, now)
		}
		views = append(views, FilmView{AssignedFilm: film, Rated: film.Rated(), Evaluation: evaluation.View(tag)})
	}
	return views
}
