// Copyright (c) 2026 marsAI. All rights reserved.

package reference

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/submission"
)

// Option is one selectable value with its label in the request locale.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// # Lists

// List names served under /reference.
const (
	ListLanguages        = "languages"
	ListDiscoverySources = "discovery-sources"
	ListCountries        = "countries"
	ListCategories       = "categories"
	ListAITools          = "ai-tools"
	ListCivilities       = "civilities"
)

// Countries are the ISO codes offered by the gallery country filter.
var Countries = []string{"FR", "US", "JP", "DE", "GB", "CA"}

var discoverySourceLabels = map[string]i18n.Text{
	"social-media":  {FR: "Réseaux sociaux", EN: "Social media"},
	"search-engine": {FR: "Moteur de recherche", EN: "Search engine"},
	"word-of-mouth": {FR: "Bouche-à-oreille", EN: "Word of mouth"},
	"press":         {FR: "Presse / Média", EN: "Press / Media"},
	"festival":      {FR: "Autre festival", EN: "Another festival"},
	"partner":       {FR: "Partenaire", EN: "Partner"},
	"other":         {FR: "Autre", EN: "Other"},
}

// languageLabels covers the values that are not language codes.
var languageLabels = map[string]i18n.Text{
	"none":  {FR: "Sans dialogue", EN: "No dialogue"},
	"other": {FR: "Autre", EN: "Other"},
}

var categoryLabels = map[gallery.Category]i18n.Text{
	gallery.CategoryFiction:      {FR: "Fiction", EN: "Fiction"},
	gallery.CategoryDocumentary:  {FR: "Documentaire", EN: "Documentary"},
	gallery.CategoryAnimation:    {FR: "Animation", EN: "Animation"},
	gallery.CategoryExperimental: {FR: "Expérimental", EN: "Experimental"},
}

var aiToolLabels = map[string]i18n.Text{
	"Script": {FR: "Scénario", EN: "Script"},
	"Image":  {FR: "Image", EN: "Image"},
	"Video":  {FR: "Vidéo", EN: "Video"},
	"Sound":  {FR: "Son", EN: "Sound"},
}

var civilityLabels = map[submission.Civility]i18n.Text{
	submission.CivilityM:   {FR: "M.", EN: "Mr"},
	submission.CivilityMme: {FR: "Mme", EN: "Ms"},
}

var lists = map[string]func(language.Tag) []Option{
	ListLanguages:        languages,
	ListDiscoverySources: discoverySources,
	ListCountries:        countries,
	ListCategories:       categories,
	ListAITools:          aiTools,
	ListCivilities:       civilities,
}

// Names returns the available list names, sorted.
func Names() []string {
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the named list localized for tag.
func Lookup(name string, tag language.Tag) ([]Option, error) {
	build, ok := lists[name]
	if !ok {
		return nil, apperr.NotFound("Reference list")
	}
	return build(tag), nil
}

// # Builders

// languages names real language codes through CLDR and capitalizes them
// the way a form label reads ("Français", not "français").
func languages(tag language.Tag) []Option {
	namer := display.Languages(tag)
	title := cases.Title(tag)

	options := make([]Option, 0, len(submission.MainLanguages))
	for _, code := range submission.MainLanguages {
		label, ok := languageLabels[code]
		if ok {
			options = append(options, Option{Value: code, Label: label.In(tag)})
			continue
		}
		options = append(options, Option{Value: code, Label: title.String(namer.Name(language.Make(code)))})
	}
	return options
}

func discoverySources(tag language.Tag) []Option {
	options := make([]Option, 0, len(submission.DiscoverySources))
	for _, value := range submission.DiscoverySources {
		options = append(options, Option{Value: value, Label: discoverySourceLabels[value].In(tag)})
	}
	return options
}

func countries(tag language.Tag) []Option {
	namer := display.Regions(tag)

	options := make([]Option, 0, len(Countries))
	for _, code := range Countries {
		options = append(options, Option{Value: code, Label: namer.Name(language.MustParseRegion(code))})
	}
	return options
}

func categories(tag language.Tag) []Option {
	options := make([]Option, 0, len(gallery.Categories))
	for _, category := range gallery.Categories {
		options = append(options, Option{Value: string(category), Label: categoryLabels[category].In(tag)})
	}
	return options
}

func aiTools(tag language.Tag) []Option {
	options := make([]Option, 0, len(gallery.AITools))
	for _, tool := range gallery.AITools {
		options = append(options, Option{Value: tool, Label: aiToolLabels[tool].In(tag)})
	}
	return options
}

func civilities(tag language.Tag) []Option {
	return []Option{
		{Value: string(submission.CivilityM), Label: civilityLabels[submission.CivilityM].In(tag)},
		{Value: string(submission.CivilityMme), Label: civilityLabels[submission.CivilityMme].In(tag)},
	}
}
