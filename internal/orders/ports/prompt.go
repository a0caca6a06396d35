package ports

import "context"

// ConfirmationPrompt asks the operator to approve a destructive action.
type ConfirmationPrompt interface {
	Confirm(ctx context.Context, message string) (bool, error)
}
