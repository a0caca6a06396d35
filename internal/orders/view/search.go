// Package view derives the displayed rows of the console from the
// authoritative order collection: a customer-name search followed by an
// optional stable column sort.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// Matches reports whether the customer name contains query, ignoring case.
// An empty query matches every order.
func Matches(order domain.Order, query string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(order.CustomerName), fold.String(query))
}

// Search returns the orders matching query in their original order.
// The input slice is never modified.
func Search(orders []domain.Order, query string) []domain.Order {
	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if Matches(order, query) {
			result = append(result, order)
		}
	}
	return result
}
