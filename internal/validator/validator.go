package validator

import (
	"errors"
	"strings"
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrNameTooLong    = errors.New("name is too long")
	ErrInvalidPayer   = errors.New("payer_id is required")
	ErrNoParticipants = errors.New("at least one participant is required")
)

const maxNameLength = 120

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if len(trimmed) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}
