package domain

import (
	"fmt"

	"summoner-tracker/internal/constants"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type roster struct {
	Participants []Participant `validate:"len=10,dive"`
}

// NewParticipants validates a match roster: exactly ten entries, each with a
// name, a champion and a team id of 100 or 200.
func NewParticipants(participants []Participant) ([]Participant, error) {
	if len(participants) != constants.ParticipantCount {
		return nil, fmt.Errorf("%w: expected %d participants, got %d",
			ErrMalformedRecord, constants.ParticipantCount, len(participants))
	}
	if err := validate.Struct(roster{Participants: participants}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	out := make([]Participant, len(participants))
	copy(out, participants)
	return out, nil
}
