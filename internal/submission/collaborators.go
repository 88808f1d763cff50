// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"strings"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
)

// MaxCollaborators bounds the team list.
const MaxCollaborators = 50

// Collaborator field names, relative to /collaborators/{index}.
const (
	FieldCollaboratorCivility   = "civility"
	FieldCollaboratorFirstName  = "first_name"
	FieldCollaboratorLastName   = "last_name"
	FieldCollaboratorProfession = "profession"
	FieldCollaboratorEmail      = "email"
)

// # Collaborator List Editor

// AddCollaborator appends a blank collaborator (civility "M") at the tail
// and returns its index.
func (draft *Draft) AddCollaborator() (int, error) {
	if len(draft.Collaborators) >= MaxCollaborators {
		return 0, apperr.Unprocessable("Too many collaborators")
	}
	draft.Collaborators = append(draft.Collaborators, Collaborator{Civility: CivilityM})
	return len(draft.Collaborators) - 1, nil
}

// UpdateCollaborator replaces the collaborator at index. Several
// collaborators may share an email address.
func (draft *Draft) UpdateCollaborator(index int, collaborator Collaborator) error {
	if index < 0 || index >= len(draft.Collaborators) {
		return apperr.NotFound("Collaborator")
	}

	collaborator.FirstName = strings.TrimSpace(collaborator.FirstName)
	collaborator.LastName = strings.TrimSpace(collaborator.LastName)
	collaborator.Profession = strings.TrimSpace(collaborator.Profession)
	collaborator.Email = strings.TrimSpace(collaborator.Email)
	if collaborator.Civility == "" {
		collaborator.Civility = CivilityM
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldCollaboratorCivility, string(collaborator.Civility), string(CivilityM), string(CivilityMme))
	validator.MaxLen(FieldCollaboratorFirstName, collaborator.FirstName, 120)
	validator.MaxLen(FieldCollaboratorLastName, collaborator.LastName, 120)
	validator.MaxLen(FieldCollaboratorProfession, collaborator.Profession, 120)
	if collaborator.Email != "" {
		validator.Email(FieldCollaboratorEmail, collaborator.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	draft.Collaborators[index] = collaborator
	return nil
}

// RemoveCollaborator deletes the collaborator at index, keeping the order
// of the others.
func (draft *Draft) RemoveCollaborator(index int) error {
	if index < 0 || index >= len(draft.Collaborators) {
		return apperr.NotFound("Collaborator")
	}
	draft.Collaborators = append(draft.Collaborators[:index], draft.Collaborators[index+1:]...)
	return nil
}
