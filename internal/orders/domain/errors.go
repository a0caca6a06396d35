package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch marks failures loading orders from the repository.
	ErrFetch = errors.New("fetch orders failed")
	// ErrNotFound is returned when an id is absent from the authoritative collection.
	ErrNotFound = errors.New("order not found")
	// ErrTransitionFailed marks a confirmed status change the repository rejected.
	ErrTransitionFailed = errors.New("status transition failed")
	// ErrDeleteFailed marks a confirmed delete the repository rejected.
	ErrDeleteFailed = errors.New("delete failed")
	// ErrInvalidTransition is returned for status changes outside the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FetchError reports a failed repository load. Prior state is retained.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", ErrFetch, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// NotFoundError reports a mutation against an unknown order id.
type NotFoundError struct {
	OrderID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.OrderID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TransitionFailedError carries the order as it was before the attempt.
type TransitionFailedError struct {
	Order     Order
	Attempted OrderStatus
	Err       error
}

func (e *TransitionFailedError) Error() string {
	return fmt.Sprintf("%s: order %s %s -> %s: %v",
		ErrTransitionFailed, e.Order.ID, e.Order.Status, e.Attempted, e.Err)
}

func (e *TransitionFailedError) Unwrap() []error {
	return []error{ErrTransitionFailed, e.Err}
}

// DeleteFailedError reports a repository delete failure.
type DeleteFailedError struct {
	OrderID string
	Err     error
}

func (e *DeleteFailedError) Error() string {
	return fmt.Sprintf("%s: order %s: %v", ErrDeleteFailed, e.OrderID, e.Err)
}

func (e *DeleteFailedError) Unwrap() []error {
	return []error{ErrDeleteFailed, e.Err}
}

// InvalidTransitionError reports a status change the lifecycle does not allow.
type InvalidTransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s %s -> %s", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
