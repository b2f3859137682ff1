package database

import (
	"errors"
	"fmt"
)

// The store error taxonomy. Callers branch on these with errors.Is.
var (
	// ErrStorage marks transient or connectivity failures. Interactive
	// callers reply with a generic notice; ingestion drops and logs.
	ErrStorage = errors.New("storage error")

	// ErrMissingReference is returned when a message references a group
	// or message type that does not exist.
	ErrMissingReference = errors.New("missing reference")

	// ErrMissingUser is the recoverable case of ErrMissingReference:
	// the sender has not been seen before. Ingestion reacts by adding
	// the user and dropping the current message.
	ErrMissingUser = fmt.Errorf("unknown user: %w", ErrMissingReference)
)
