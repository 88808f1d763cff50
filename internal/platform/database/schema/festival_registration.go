// Copyright (c) 2026 marsAI. All rights reserved.

package schema

// FestivalRegistrationTable represents the 'festival.registration' table
type FestivalRegistrationTable struct {
	Table      string
	ID         string
	FestivalID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Company    string
	CreatedAt  string
}

// FestivalRegistration is the schema definition for festival.registration
var FestivalRegistration = FestivalRegistrationTable{
	Table:      "festival.registration",
	ID:         "id",
	FestivalID: "festivalid",
	FirstName:  "firstname",
	LastName:   "lastname",
	Email:      "email",
	Phone:      "phone",
	Company:    "company",
	CreatedAt:  "createdat",
}

func (t FestivalRegistrationTable) Columns() []string {
	return []string{t.ID, t.FestivalID, t.FirstName, t.LastName, t.Email, t.Phone, t.Company, t.CreatedAt}
}

// FestivalBookingTable represents the 'festival.booking' table
type FestivalBookingTable struct {
	Table          string
	ID             string
	RegistrationID string
	FestivalID     string
	Email          string
	EventID        string
	EventDate      string
	Slot           string
	CreatedAt      string
}

// FestivalBooking is the schema definition for festival.booking
var FestivalBooking = FestivalBookingTable{
	Table:          "festival.booking",
	ID:             "id",
	RegistrationID: "registrationid",
	FestivalID:     "festivalid",
	Email:          "email",
	EventID:        "eventid",
	EventDate:      "eventdate",
	Slot:           "slot",
	CreatedAt:      "createdat",
}

func (t FestivalBookingTable) Columns() []string {
	return []string{t.ID, t.RegistrationID, t.FestivalID, t.Email, t.EventID, t.EventDate, t.Slot, t.CreatedAt}
}
