package commands

import "errors"

// Outcome describes how a confirmed-action request ended.
type Outcome string

const (
	// OutcomeApplied means the change was persisted and applied locally.
	OutcomeApplied Outcome = "applied"
	// OutcomeUnchanged means there was nothing to do.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeDeclined means the operator declined the confirmation.
	OutcomeDeclined Outcome = "declined"
	// OutcomeFailed is only recorded in telemetry; callers receive an error.
	OutcomeFailed Outcome = "failed"
)

// ErrInvalidCommand marks commands rejected before any work is attempted.
var ErrInvalidCommand = errors.New("invalid command")
