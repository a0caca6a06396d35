package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/ports"
)

const shipConfirmMessage = "Are you sure you want to ship this order?"

type TransitionStatusCommand struct {
	OrderID string
	Target  domain.OrderStatus
}

func (c TransitionStatusCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidCommand)
	}
	if strings.TrimSpace(string(c.Target)) == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidCommand)
	}
	return nil
}

// TransitionResult reports the order as the collection holds it after the request.
type TransitionResult struct {
	Order    domain.Order
	Previous domain.OrderStatus
	Outcome  Outcome
}

type TransitionHandler interface {
	Handle(ctx context.Context, cmd TransitionStatusCommand) (TransitionResult, error)
}

// TransitionStatusCommandHandler confirms, persists, then applies a status
// change. Local state only changes after the repository accepted it.
type TransitionStatusCommandHandler struct {
	orders *collection.Collection
	repo   ports.OrderRepository
	prompt ports.ConfirmationPrompt
	events ports.EventBus
	logger *slog.Logger
}

func NewTransitionStatusCommandHandler(
	orders *collection.Collection,
	repo ports.OrderRepository,
	prompt ports.ConfirmationPrompt,
	events ports.EventBus,
	logger *slog.Logger,
) *TransitionStatusCommandHandler {
	return &TransitionStatusCommandHandler{
		orders: orders,
		repo:   repo,
		prompt: prompt,
		events: events,
		logger: logger,
	}
}

func (h *TransitionStatusCommandHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	current, ok := h.orders.Find(cmd.OrderID)
	if !ok {
		return TransitionResult{}, &domain.NotFoundError{OrderID: cmd.OrderID}
	}

	result := TransitionResult{Order: current, Previous: current.Status}

	if current.Status == cmd.Target {
		result.Outcome = OutcomeUnchanged
		return result, nil
	}

	if !domain.CanTransition(current.Status, cmd.Target) {
		return result, &domain.InvalidTransitionError{OrderID: current.ID, From: current.Status, To: cmd.Target}
	}

	confirmed, err := h.prompt.Confirm(ctx, transitionMessage(current, cmd.Target))
	if err != nil {
		return result, fmt.Errorf("confirm status change: %w", err)
	}
	if !confirmed {
		result.Outcome = OutcomeDeclined
		return result, nil
	}

	if err := h.repo.UpdateStatus(ctx, current.ID, cmd.Target); err != nil {
		return result, &domain.TransitionFailedError{Order: current, Attempted: cmd.Target, Err: err}
	}

	if err := h.orders.UpdateStatus(current.ID, cmd.Target); err != nil {
		return result, err
	}

	updated, _ := h.orders.Find(current.ID)
	result.Order = updated
	result.Outcome = OutcomeApplied

	if err := h.events.PublishStatusChanged(ctx, updated, current.Status); err != nil {
		h.logger.WarnContext(ctx, "failed to publish status change",
			"error", err,
			"order_id", updated.ID,
		)
	}

	return result, nil
}

func transitionMessage(order domain.Order, target domain.OrderStatus) string {
	if target == domain.StatusShipped {
		return shipConfirmMessage
	}
	return fmt.Sprintf("Are you sure you want to change order %s from %s to %s?", order.ID, order.Status, target)
}
