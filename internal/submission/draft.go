// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"encoding/json"
	"time"

	"github.com/marsai/festival/internal/platform/validate"
)

// # Enumerations

// Civility is the form of address of a person.
type Civility string

const (
	CivilityM   Civility = "M"
	CivilityMme Civility = "Mme"
)

// Classification is the AI-usage declaration of a film.
type Classification string

const (
	// ClassificationFull is a 100% AI-generated film.
	ClassificationFull Classification = "full"
	// ClassificationHybrid mixes AI generation with live action.
	ClassificationHybrid Classification = "hybrid"
)

// DiscoverySources lists how a director heard about the festival.
var DiscoverySources = []string{
	"social-media", "search-engine", "word-of-mouth", "press", "festival", "partner", "other",
}

// MainLanguages lists the spoken languages a film may declare.
// "none" means no dialogue.
var MainLanguages = []string{
	"fr", "en", "es", "de", "it", "pt", "zh", "ja", "ko", "ar", "none", "other",
}

// # Draft Sections

// Director is step 1: who made the film and how to reach them.
type Director struct {
	Civility        Civility `json:"civility"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	BirthDate       string   `json:"birth_date"`
	Email           string   `json:"email"`
	Mobile          string   `json:"mobile"`
	Street          string   `json:"street"`
	PostalCode      string   `json:"postal_code"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Profession      string   `json:"profession"`
	YouTubeURL      string   `json:"youtube_url"`
	InstagramURL    string   `json:"instagram_url"`
	LinkedInURL     string   `json:"linkedin_url"`
	FacebookURL     string   `json:"facebook_url"`
	XURL            string   `json:"x_url"`
	DiscoverySource string   `json:"discovery_source"`
	Newsletter      bool     `json:"newsletter"`
}

// FullName is "First Last".
func (director Director) FullName() string {
	switch {
	case director.FirstName == "":
		return director.LastName
	case director.LastName == "":
		return director.FirstName
	}
	return director.FirstName + " " + director.LastName
}

// Film is step 2: titles, runtime and synopses.
type Film struct {
	TitleOriginal    string `json:"title_original"`
	TitleEnglish     string `json:"title_english"`
	Duration         string `json:"duration"`
	MainLanguage     string `json:"main_language"`
	Tags             string `json:"tags"`
	SynopsisOriginal string `json:"synopsis_original"`
	SynopsisEnglish  string `json:"synopsis_english"`
}

// AIUsage is step 3: the AI declaration.
type AIUsage struct {
	Classification Classification `json:"classification"`
	TechStack      string         `json:"tech_stack"`
	Methodology    string         `json:"methodology"`
}

// Deliverables is step 4. File fields hold object storage keys and are only
// written by media uploads.
type Deliverables struct {
	VideoURL      string   `json:"video_url"`
	HasSubtitles  bool     `json:"has_subtitles"`
	SubtitlesFile string   `json:"subtitles_file"`
	PosterFile    string   `json:"poster_file"`
	StillsFiles   []string `json:"stills_files"`
}

// Collaborator is one member of the film team (step 5).
type Collaborator struct {
	Civility   Civility `json:"civility"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Profession string   `json:"profession"`
	Email      string   `json:"email"`
}

// # Draft

// Draft is the in-progress, unsubmitted film submission.
//
// A draft is owned by whoever holds its ID. Concurrent writers of the same
// draft are last-writer-wins.
type Draft struct {
	ID            string         `json:"id"`
	Step          int            `json:"step"`
	Director      Director       `json:"director"`
	Film          Film           `json:"film"`
	AIUsage       AIUsage        `json:"ai_usage"`
	Deliverables  Deliverables   `json:"deliverables"`
	Collaborators []Collaborator `json:"collaborators"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewDraft returns an empty draft at step 1 with the form defaults.
func NewDraft(id string, now time.Time) *Draft {
	return &Draft{
		ID:            id,
		Step:          FirstStep,
		Director:      Director{Civility: CivilityM},
		AIUsage:       AIUsage{Classification: ClassificationFull},
		Deliverables:  Deliverables{StillsFiles: []string{}},
		Collaborators: []Collaborator{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// # Partial Updates

// Patch is the body of PATCH /drafts/{id}. Each present section is merged
// field by field into the draft; absent fields keep their value.
type Patch struct {
	Director     json.RawMessage `json:"director"`
	Film         json.RawMessage `json:"film"`
	AIUsage      json.RawMessage `json:"ai_usage"`
	Deliverables json.RawMessage `json:"deliverables"`
}

// deliverablesPatch excludes the storage keys, which clients cannot set.
type deliverablesPatch struct {
	VideoURL     *string `json:"video_url"`
	HasSubtitles *bool   `json:"has_subtitles"`
}

// Apply merges patch into the draft. The step, collaborators and media keys
// are never touched.
func (draft *Draft) Apply(patch Patch, now time.Time) error {
	if len(patch.Director) > 0 {
		if err := json.Unmarshal(patch.Director, &draft.Director); err != nil {
			return validate.ErrInvalidJSON
		}
	}
	if len(patch.Film) > 0 {
		if err := json.Unmarshal(patch.Film, &draft.Film); err != nil {
			return validate.ErrInvalidJSON
		}
	}
	if len(patch.AIUsage) > 0 {
		if err := json.Unmarshal(patch.AIUsage, &draft.AIUsage); err != nil {
			return validate.ErrInvalidJSON
		}
	}
	if len(patch.Deliverables) > 0 {
		var deliverables deliverablesPatch
		if err := json.Unmarshal(patch.Deliverables, &deliverables); err != nil {
			return validate.ErrInvalidJSON
		}
		if deliverables.VideoURL != nil {
			draft.Deliverables.VideoURL = *deliverables.VideoURL
		}
		if deliverables.HasSubtitles != nil {
			draft.Deliverables.HasSubtitles = *deliverables.HasSubtitles
		}
	}

	draft.UpdatedAt = now
	return nil
}
