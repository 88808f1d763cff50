// Copyright (c) 2026 marsAI. All rights reserved.

package event

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/validate"
)

// Booking is one seat: an event on a festival day at a time slot.
type Booking struct {
	EventID ID     `json:"event_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// RegistrationInput is the visitor's registration form.
type RegistrationInput struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Bookings  []Booking `json:"bookings"`
}

// Registration is a stored registration with its seats.
type Registration struct {
	ID         string    `json:"id"`
	FestivalID string    `json:"festival_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Company    string    `json:"company"`
	Bookings   []Booking `json:"bookings"`
	CreatedAt  time.Time `json:"created_at"`
}

// NormalizeEmail is the form under which bookings are matched.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (input *RegistrationInput) normalize() {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	for i := range input.Bookings {
		input.Bookings[i].Date = strings.TrimSpace(input.Bookings[i].Date)
		input.Bookings[i].Time = strings.TrimSpace(input.Bookings[i].Time)
	}
}

/*
validate checks the form and every booking against the catalog.

Description: A booking must name a known event, one of the festival days
and one of the event's slots. An event appears at most once per form.
*/
func (input *RegistrationInput) validate(days []string) error {
	validator := &validate.Validator{}

	validator.Required("first_name", input.FirstName).MaxLen("first_name", input.FirstName, 120)
	validator.Required("last_name", input.LastName).MaxLen("last_name", input.LastName, 120)
	validator.Required("email", input.Email).Email("email", input.Email)
	validator.Required("phone", input.Phone).MaxLen("phone", input.Phone, 40)
	validator.MaxLen("company", input.Company, 200)
	validator.Custom("bookings", len(input.Bookings) == 0, "Select at least one event")

	seen := make(map[ID]bool, len(input.Bookings))
	for i, booking := range input.Bookings {
		field := fmt.Sprintf("bookings[%d]", i)

		definition, known := Lookup(booking.EventID)
		validator.Custom(field+".event_id", !known, "Unknown event")
		validator.Custom(field+".event_id", known && seen[booking.EventID], "You are already registered for this event")
		seen[booking.EventID] = true

		validator.OneOf(field+".date", booking.Date, days...)
		if known {
			validator.OneOf(field+".time", booking.Time, definition.Slots...)
		}
	}

	return validator.Err()
}

// eventIDs returns the booked events in a stable order.
func (registration *Registration) eventIDs() []ID {
	ids := make([]ID, 0, len(registration.Bookings))
	for _, booking := range registration.Bookings {
		ids = append(ids, booking.EventID)
	}
	slices.Sort(ids)
	return ids
}
