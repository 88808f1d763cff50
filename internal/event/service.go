// Copyright (c) 2026 marsAI. All rights reserved.

package event

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/pkg/uuid"
)

// # Service Layer

// Service books festival events.
type Service struct {
	repo      Repository
	festivals Festivals
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new event [Service]. now may be nil.
func NewService(repo Repository, festivals Festivals, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, festivals: festivals, logger: logger, now: now}
}

// Programme returns the localized catalog with live seat counts.
// identifier selects a festival by ID or slug; empty means the active one.
func (service *Service) Programme(context context.Context, identifier string, tag language.Tag) (*Programme, error) {
	current, err := service.resolveFestival(context, identifier)
	if err != nil {
		return nil, err
	}

	reserved, err := service.repo.Reserved(context, current.ID)
	if err != nil {
		return nil, err
	}

	programme := present(current.ID, eventDays(current), reserved, tag)
	return &programme, nil
}

/*
Register books the visitor's seats.

Returns:
  - *Registration: The stored registration
  - error: VALIDATION_ERROR, CONFLICT for an event already booked with this
    email, UNPROCESSABLE when an event is full
*/
func (service *Service) Register(context context.Context, identifier string, input RegistrationInput) (*Registration, error) {
	current, err := service.resolveFestival(context, identifier)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := input.validate(eventDays(current)); err != nil {
		return nil, err
	}

	registration := &Registration{
		ID:         uuid.New(),
		FestivalID: current.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Bookings:   input.Bookings,
		CreatedAt:  service.now(),
	}

	if err := service.repo.Register(context, registration, Capacities()); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "event_registration_created",
		slog.String("registration_id", registration.ID),
		slog.String("festival_id", registration.FestivalID),
		slog.Int("bookings", len(registration.Bookings)),
	)
	return registration, nil
}

// CancelResult reports how many seats a cancellation freed.
type CancelResult struct {
	Freed int `json:"freed"`
}

// Cancel deletes the registrations made with email.
func (service *Service) Cancel(context context.Context, identifier, email string) (*CancelResult, error) {
	email = NormalizeEmail(email)
	if err := (&validate.Validator{}).Required("email", email).Email("email", email).Err(); err != nil {
		return nil, err
	}

	current, err := service.resolveFestival(context, identifier)
	if err != nil {
		return nil, err
	}

	freed, err := service.repo.Cancel(context, current.ID, email)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "event_registration_cancelled",
		slog.String("festival_id", current.ID),
		slog.Int("freed", freed),
	)
	return &CancelResult{Freed: freed}, nil
}

// # Helpers

func (service *Service) resolveFestival(context context.Context, identifier string) (*festival.Festival, error) {
	if identifier != "" {
		return service.festivals.GetFestival(context, identifier)
	}
	return service.festivals.Active(context)
}

func eventDays(current *festival.Festival) []string {
	if len(current.EventDays) == 0 {
		return festival.DefaultEventDays
	}
	return current.EventDays
}
