package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dejobratic/orderdesk/internal/orders/app/commands"
	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

type transitionFixture struct {
	orders  *collection.Collection
	repo    *mockRepository
	prompt  *mockPrompt
	events  *mockEventBus
	handler *commands.TransitionStatusCommandHandler
}

func newTransitionFixture(t *testing.T) *transitionFixture {
	t.Helper()
	orders := collection.New()
	if err := orders.Load(sampleOrders()); err != nil {
		t.Fatalf("load orders: %v", err)
	}
	f := &transitionFixture{
		orders: orders,
		repo:   &mockRepository{},
		prompt: &mockPrompt{answer: true},
		events: &mockEventBus{},
	}
	f.handler = commands.NewTransitionStatusCommandHandler(f.orders, f.repo, f.prompt, f.events, discardLogger())
	return f
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ships a pending order after confirmation and persistence", func(t *testing.T) {
		f := newTransitionFixture(t)
		f.orders.Search("alice")

		result, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "1", Target: domain.StatusShipped})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Outcome != commands.OutcomeApplied {
			t.Errorf("expected outcome %s, got %s", commands.OutcomeApplied, result.Outcome)
		}
		if result.Previous != domain.StatusPending {
			t.Errorf("expected previous status %s, got %s", domain.StatusPending, result.Previous)
		}
		if result.Order.Status != domain.StatusShipped {
			t.Errorf("expected returned status %s, got %s", domain.StatusShipped, result.Order.Status)
		}

		stored, _ := f.orders.Find("1")
		if stored.Status != domain.StatusShipped {
			t.Errorf("expected authoritative status %s, got %s", domain.StatusShipped, stored.Status)
		}
		if shown := f.orders.Displayed()[0]; shown.ID != "1" || shown.Status != domain.StatusShipped {
			t.Errorf("expected displayed order 1 to be shipped, got %+v", shown)
		}
		if len(f.prompt.messages) != 1 || f.prompt.messages[0] != "Are you sure you want to ship this order?" {
			t.Errorf("unexpected prompt messages: %v", f.prompt.messages)
		}
		if len(f.events.statusChanged) != 1 {
			t.Errorf("expected 1 status event, got %d", len(f.events.statusChanged))
		}
	})

	t.Run("same status is a no-op without prompting", func(t *testing.T) {
		f := newTransitionFixture(t)

		result, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "2", Target: domain.StatusShipped})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Outcome != commands.OutcomeUnchanged {
			t.Errorf("expected outcome %s, got %s", commands.OutcomeUnchanged, result.Outcome)
		}
		if len(f.prompt.messages) != 0 {
			t.Errorf("expected no prompt, got %v", f.prompt.messages)
		}
		if f.repo.updateCalls != 0 {
			t.Errorf("expected no repository call, got %d", f.repo.updateCalls)
		}
	})

	t.Run("declined confirmation leaves state unchanged without error", func(t *testing.T) {
		f := newTransitionFixture(t)
		f.prompt.answer = false

		result, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "1", Target: domain.StatusShipped})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Outcome != commands.OutcomeDeclined {
			t.Errorf("expected outcome %s, got %s", commands.OutcomeDeclined, result.Outcome)
		}
		if f.repo.updateCalls != 0 {
			t.Errorf("expected no repository call, got %d", f.repo.updateCalls)
		}
		stored, _ := f.orders.Find("1")
		if stored.Status != domain.StatusPending {
			t.Errorf("expected status %s, got %s", domain.StatusPending, stored.Status)
		}
	})

	t.Run("persistence failure reports TransitionFailedError and keeps local state", func(t *testing.T) {
		f := newTransitionFixture(t)
		repoErr := errors.New("backend unavailable")
		f.repo.updateStatusFn = func(ctx context.Context, id string, status domain.OrderStatus) error {
			return repoErr
		}

		_, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "1", Target: domain.StatusShipped})

		var failed *domain.TransitionFailedError
		if !errors.As(err, &failed) {
			t.Fatalf("expected TransitionFailedError, got: %v", err)
		}
		if failed.Order.ID != "1" || failed.Order.Status != domain.StatusPending {
			t.Errorf("expected original order in error, got %+v", failed.Order)
		}
		if failed.Attempted != domain.StatusShipped {
			t.Errorf("expected attempted status %s, got %s", domain.StatusShipped, failed.Attempted)
		}
		if !errors.Is(err, repoErr) {
			t.Errorf("expected error to wrap repository error, got: %v", err)
		}
		if shown := f.orders.Displayed()[0]; shown.Status != domain.StatusPending {
			t.Errorf("expected displayed status %s, got %s", domain.StatusPending, shown.Status)
		}
		if len(f.events.statusChanged) != 0 {
			t.Errorf("expected no events, got %d", len(f.events.statusChanged))
		}
	})

	t.Run("unknown order returns NotFoundError", func(t *testing.T) {
		f := newTransitionFixture(t)

		_, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "missing", Target: domain.StatusShipped})

		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("transition outside lifecycle is rejected before prompting", func(t *testing.T) {
		f := newTransitionFixture(t)

		_, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "2", Target: domain.StatusPending})

		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got: %v", err)
		}
		if len(f.prompt.messages) != 0 {
			t.Errorf("expected no prompt, got %v", f.prompt.messages)
		}
	})

	t.Run("prompt failure is surfaced", func(t *testing.T) {
		f := newTransitionFixture(t)
		promptErr := errors.New("prompt closed")
		f.prompt.err = promptErr

		_, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "1", Target: domain.StatusShipped})

		if !errors.Is(err, promptErr) {
			t.Errorf("expected prompt error, got: %v", err)
		}
		if f.repo.updateCalls != 0 {
			t.Errorf("expected no repository call, got %d", f.repo.updateCalls)
		}
	})

	t.Run("event publish failure does not undo the transition", func(t *testing.T) {
		f := newTransitionFixture(t)
		f.events.publishErr = errors.New("broker down")

		result, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{OrderID: "3", Target: domain.StatusShipped})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if result.Outcome != commands.OutcomeApplied {
			t.Errorf("expected outcome %s, got %s", commands.OutcomeApplied, result.Outcome)
		}
	})

	t.Run("returns validation error when order id is empty", func(t *testing.T) {
		f := newTransitionFixture(t)

		_, err := f.handler.Handle(ctx, commands.TransitionStatusCommand{Target: domain.StatusShipped})

		if err == nil || !errors.Is(err, commands.ErrInvalidCommand) {
			t.Errorf("expected ErrInvalidCommand, got %v", err)
		}
	})
}
