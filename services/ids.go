package services

import (
	"strings"

	"github.com/google/uuid"
)

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil || parsed == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}
