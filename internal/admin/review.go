// Copyright (c) 2026 marsAI. All rights reserved.

package admin

import (
	"fmt"
	"math"
	"time"

	"github.com/marsai/festival/internal/submission"
)

// StatusAll disables the status filter of the submission list.
const StatusAll = "all"

// ListFilter narrows the submission list of a festival.
type ListFilter struct {
	// Query searches title and director, case-insensitively.
	Query string
	// Status keeps one review state; empty keeps all of them.
	Status submission.Status
}

// SubmissionSummary is one row of the review list.
type SubmissionSummary struct {
	ID              string                    `json:"id"`
	Title           string                    `json:"title"`
	TitleEnglish    string                    `json:"title_english"`
	Director        string                    `json:"director"`
	Email           string                    `json:"email"`
	Country         string                    `json:"country"`
	DurationSeconds int                       `json:"duration_seconds"`
	Classification  submission.Classification `json:"classification"`
	Status          submission.Status         `json:"status"`
	SubmittedAt     time.Time                 `json:"submitted_at"`
	Published       bool                      `json:"published"`
	Evaluations     int                       `json:"evaluations"`
	JuryAverage     *float64                  `json:"jury_average"`
}

// Stats is the raw dashboard aggregate of a festival.
type Stats struct {
	Submissions       int                       `json:"submissions"`
	ByStatus          map[submission.Status]int `json:"by_status"`
	Countries         int                       `json:"countries"`
	Evaluations       int                       `json:"evaluations"`
	JuryAverage       *float64                  `json:"jury_average"`
	JuryAverageLabel  string                    `json:"jury_average_label"`
	OfficialSelection int                       `json:"official_selection"`
	Published         int                       `json:"published"`
}

// finish rounds the jury average to one decimal and renders it out of ten.
// A festival without submitted evaluations shows a dash.
func (stats *Stats) finish() {
	if stats.ByStatus == nil {
		stats.ByStatus = map[submission.Status]int{}
	}
	for _, status := range []submission.Status{submission.StatusPending, submission.StatusValidated, submission.StatusRejected} {
		if _, ok := stats.ByStatus[status]; !ok {
			stats.ByStatus[status] = 0
		}
	}

	if stats.JuryAverage == nil {
		stats.JuryAverageLabel = "-"
		return
	}
	rounded := roundTenth(*stats.JuryAverage)
	stats.JuryAverage = &rounded
	stats.JuryAverageLabel = fmt.Sprintf("%.1f/10", rounded)
}

func roundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
