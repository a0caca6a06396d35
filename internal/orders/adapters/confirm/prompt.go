// Package confirm provides ConfirmationPrompt implementations for hosts that
// cannot ask the operator interactively.
package confirm

import "context"

// Static answers every prompt with the same decision.
type Static bool

func (s Static) Confirm(_ context.Context, _ string) (bool, error) {
	return bool(s), nil
}

type answerKey struct{}

// WithAnswer records the operator's decision for prompts raised under ctx.
func WithAnswer(ctx context.Context, answer bool) context.Context {
	return context.WithValue(ctx, answerKey{}, answer)
}

// ContextPrompt answers with the decision stored by WithAnswer. Without one
// the prompt is treated as declined.
type ContextPrompt struct{}

func (ContextPrompt) Confirm(ctx context.Context, _ string) (bool, error) {
	answer, _ := ctx.Value(answerKey{}).(bool)
	return answer, nil
}
