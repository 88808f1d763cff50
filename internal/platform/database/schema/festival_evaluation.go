// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// FestivalEvaluationTable represents the 'festival.evaluation' table
type FestivalEvaluationTable struct {
	Table        string
	SubmissionID string
	JurorID      string
	Creativity   string
	Technical    string
	Narrative    string
	Comment      string
	Submitted    string
	UpdatedAt    string
}

// FestivalEvaluation is the schema definition for festival.evaluation
var FestivalEvaluation = FestivalEvaluationTable{
	Table:        "festival.evaluation",
	SubmissionID: "submissionid",
	JurorID:      "jurorid",
	Creativity:   "creativity",
	Technical:    "technical",
	Narrative:    "narrative",
	Comment:      "comment",
	Submitted:    "submitted",
	UpdatedAt:    "updatedat",
}

func (t FestivalEvaluationTable) Columns() []string {
	return []string{t.SubmissionID, t.JurorID, t.Creativity, t.Technical, t.Narrative, t.Comment, t.Submitted, t.UpdatedAt}
}
