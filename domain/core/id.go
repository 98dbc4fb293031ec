package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
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

// Domain-specific ID types
type (
	EntryID ID
	LogID   ID
)

func (id EntryID) String() string { return ID(id).String() }
func (id LogID) String() string   { return ID(id).String() }

// NewEntryID allocates an identifier for an imported diary entry.
func NewEntryID() EntryID { return EntryID(NewID()) }

// NewLogID allocates an identifier for an AI log record.
func NewLogID() LogID { return LogID(NewID()) }

// ParseEntryID parses a string into EntryID
func ParseEntryID(s string) (EntryID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("entry ID cannot be empty")
	}
	return EntryID(s), nil
}
