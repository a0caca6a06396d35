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

const deleteConfirmMessage = "Are you sure you want to delete this order?"

type DeleteOrderCommand struct {
	OrderID string
}

func (c DeleteOrderCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidCommand)
	}
	return nil
}

type DeleteResult struct {
	Order   domain.Order
	Outcome Outcome
}

type DeleteHandler interface {
	Handle(ctx context.Context, cmd DeleteOrderCommand) (DeleteResult, error)
}

// DeleteOrderCommandHandler confirms, deletes remotely, then removes locally.
// Deleting an id the collection does not hold is a no-op.
type DeleteOrderCommandHandler struct {
	orders *collection.Collection
	repo   ports.OrderRepository
	prompt ports.ConfirmationPrompt
	events ports.EventBus
	logger *slog.Logger
}

func NewDeleteOrderCommandHandler(
	orders *collection.Collection,
	repo ports.OrderRepository,
	prompt ports.ConfirmationPrompt,
	events ports.EventBus,
	logger *slog.Logger,
) *DeleteOrderCommandHandler {
	return &DeleteOrderCommandHandler{
		orders: orders,
		repo:   repo,
		prompt: prompt,
		events: events,
		logger: logger,
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (DeleteResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteResult{}, err
	}

	order, ok := h.orders.Find(cmd.OrderID)
	if !ok {
		return DeleteResult{Order: domain.Order{ID: cmd.OrderID}, Outcome: OutcomeUnchanged}, nil
	}

	result := DeleteResult{Order: order}

	confirmed, err := h.prompt.Confirm(ctx, deleteConfirmMessage)
	if err != nil {
		return result, fmt.Errorf("confirm delete: %w", err)
	}
	if !confirmed {
		result.Outcome = OutcomeDeclined
		return result, nil
	}

	if err := h.repo.Delete(ctx, order.ID); err != nil {
		return result, &domain.DeleteFailedError{OrderID: order.ID, Err: err}
	}

	h.orders.Remove(order.ID)
	result.Outcome = OutcomeApplied

	if err := h.events.PublishOrderDeleted(ctx, order); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order deletion",
			"error", err,
			"order_id", order.ID,
		)
	}

	return result, nil
}
