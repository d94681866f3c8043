package core

import (
	"github.com/google/uuid"
)

// ID identifies a generated artifact such as a report
type ID string

// NewID creates a time-ordered identifier (UUID v7, v4 if v7 fails)
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}
