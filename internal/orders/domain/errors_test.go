package domain_test

import (
	"errors"
	"testing"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFailedError(t *testing.T) {
	cause := errors.New("backend unavailable")
	order := domain.Order{ID: "1", Status: domain.StatusPending}
	var err error = &domain.TransitionFailedError{Order: order, Attempted: domain.StatusShipped, Err: cause}

	assert.ErrorIs(t, err, domain.ErrTransitionFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrDeleteFailed)
	assert.Equal(t, "status transition failed: order 1 PENDING -> SHIPPED: backend unavailable", err.Error())

	var target *domain.TransitionFailedError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, order, target.Order)
	assert.Equal(t, domain.StatusShipped, target.Attempted)
}

func TestDeleteFailedError(t *testing.T) {
	cause := errors.New("timeout")
	var err error = &domain.DeleteFailedError{OrderID: "7", Err: cause}

	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "delete failed: order 7: timeout", err.Error())
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	var err error = &domain.FetchError{Err: cause}

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch orders failed: connection refused", err.Error())
}

func TestNotFoundError(t *testing.T) {
	var err error = &domain.NotFoundError{OrderID: "42"}

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "order not found: 42", err.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	var err error = &domain.InvalidTransitionError{OrderID: "9", From: domain.StatusShipped, To: domain.StatusPending}

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "invalid status transition: order 9 SHIPPED -> PENDING", err.Error())
}
