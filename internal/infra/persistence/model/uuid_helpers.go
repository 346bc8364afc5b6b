package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()

	return &s
}

func parseUUIDString(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse uuid in jsonb column")
	}

	return id, nil
}

func parseUUIDStringPtr(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := parseUUIDString(*s)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
