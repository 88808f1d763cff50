// Copyright (c) 2026 marsAI. All rights reserved.

package event

import (
	"context"

	"github.com/marsai/festival/internal/festival"
)

// Repository persists registrations and owns seat accounting.
type Repository interface {
	// Reserved counts booked seats per event of a festival.
	Reserved(context context.Context, festivalID string) (map[ID]int, error)
	// Register stores the registration and its bookings atomically. It fails
	// with CONFLICT when the email already booked one of the events and
	// UNPROCESSABLE when an event has no seat left under capacities.
	Register(context context.Context, registration *Registration, capacities map[ID]int) error
	// Cancel deletes every registration of email and reports the freed seats.
	Cancel(context context.Context, festivalID, email string) (int, error)
}

// Festivals resolves the festival events are booked for.
type Festivals interface {
	Active(context context.Context) (*festival.Festival, error)
	GetFestival(context context.Context, identifier string) (*festival.Festival, error)
}
