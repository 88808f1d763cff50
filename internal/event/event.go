// Copyright (c) 2026 marsAI. All rights reserved.

package event

import (
	"slices"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/platform/i18n"
)

// ID names one festival event.
type ID string

const (
	Contest         ID = "contest"
	Masterclass     ID = "masterclass"
	Conferences     ID = "conferences"
	ClosingCeremony ID = "closingCeremony"
)

// Definition is a bookable event. Capacity is shared by every day and slot.
type Definition struct {
	ID          ID
	Title       i18n.Text
	Description i18n.Text
	Schedule    i18n.Text
	Capacity    int
	Slots       []string
	Featured    bool
}

// Catalog lists the events of every festival edition, in display order.
var Catalog = []Definition{
	{
		ID:          Contest,
		Title:       i18n.Text{FR: "Concours de Films", EN: "Film Contest"},
		Description: i18n.Text{FR: "Assistez à la projection des films finalistes en compétition", EN: "Attend the screening of finalist films in competition"},
		Schedule:    i18n.Text{FR: "12 Juin 2026 - 14h00", EN: "June 12, 2026 - 2:00 PM"},
		Capacity:    500,
		Slots:       []string{"14:00", "14:30", "15:00", "15:30"},
	},
	{
		ID:          Masterclass,
		Title:       i18n.Text{FR: "Masterclass", EN: "Masterclass"},
		Description: i18n.Text{FR: "Ateliers pratiques avec des experts en IA générative", EN: "Practical workshops with generative AI experts"},
		Schedule:    i18n.Text{FR: "12 Juin 2026 - 10h00", EN: "June 12, 2026 - 10:00 AM"},
		Capacity:    200,
		Slots:       []string{"10:00", "10:30", "11:00", "11:30"},
	},
	{
		ID:          Conferences,
		Title:       i18n.Text{FR: "Conférences", EN: "Conferences"},
		Description: i18n.Text{FR: "Panels et discussions sur le futur du cinéma IA", EN: "Panels and discussions on the future of AI cinema"},
		Schedule:    i18n.Text{FR: "12-13 Juin 2026", EN: "June 12-13, 2026"},
		Capacity:    800,
		Slots:       []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"},
	},
	{
		ID:          ClosingCeremony,
		Title:       i18n.Text{FR: "Soirée de Clôture - marsAI Night", EN: "Closing Ceremony - marsAI Night"},
		Description: i18n.Text{FR: "Remise du prix du Lauréat de 50 000$ + networking", EN: "Winner Prize of $50,000 award ceremony + networking"},
		Schedule:    i18n.Text{FR: "13 Juin 2026 - 19h00", EN: "June 13, 2026 - 7:00 PM"},
		Capacity:    1000,
		Slots:       []string{"19:00", "19:30", "20:00"},
		Featured:    true,
	},
}

// Lookup returns the definition of id.
func Lookup(id ID) (Definition, bool) {
	index := slices.IndexFunc(Catalog, func(definition Definition) bool { return definition.ID == id })
	if index < 0 {
		return Definition{}, false
	}
	return Catalog[index], true
}

// Capacities maps every event to its seat count.
func Capacities() map[ID]int {
	capacities := make(map[ID]int, len(Catalog))
	for _, definition := range Catalog {
		capacities[definition.ID] = definition.Capacity
	}
	return capacities
}

// # Availability

// Seats is the seat accounting of one event.
type Seats struct {
	Total     int `json:"total"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

// SeatsOf computes availability; overbooked events show zero seats left.
func SeatsOf(capacity, reserved int) Seats {
	return Seats{Total: capacity, Reserved: reserved, Available: max(capacity-reserved, 0)}
}

// View is one localized catalog entry.
type View struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Schedule    string   `json:"schedule"`
	Slots       []string `json:"slots"`
	Featured    bool     `json:"featured"`
	Seats       Seats    `json:"capacity"`
}

// Programme is the event catalog of one festival.
type Programme struct {
	FestivalID string   `json:"festival_id"`
	EventDays  []string `json:"event_days"`
	Events     []View   `json:"events"`
}

func present(festivalID string, days []string, reserved map[ID]int, tag language.Tag) Programme {
	views := make([]View, 0, len(Catalog))
	for _, definition := range Catalog {
		views = append(views, View{
			ID:          definition.ID,
			Title:       definition.Title.In(tag),
			Description: definition.Description.In(tag),
			Schedule:    definition.Schedule.In(tag),
			Slots:       definition.Slots,
			Featured:    definition.Featured,
			Seats:       SeatsOf(definition.Capacity, reserved[definition.ID]),
		})
	}
	return Programme{FestivalID: festivalID, EventDays: days, Events: views}
}
