package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

var (
	ErrUnknownSortColumn    = errors.New("unknown sort column")
	ErrUnknownSortDirection = errors.New("unknown sort direction")
)

// Column names a sortable order field.
type Column string

const (
	ColumnID            Column = "id"
	ColumnCustomerName  Column = "customerName"
	ColumnCustomerEmail Column = "customerEmail"
	ColumnTotalPrice    Column = "totalPrice"
	ColumnStatus        Column = "status"
)

// Direction is the sort order of a column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortKey is a column together with its direction.
type SortKey struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// ParseColumn accepts the camelCase field names plus their snake_case and
// short aliases.
func ParseColumn(value string) (Column, error) {
	switch strings.TrimSpace(value) {
	case "id", "_id":
		return ColumnID, nil
	case "customerName", "customer_name", "name":
		return ColumnCustomerName, nil
	case "customerEmail", "customer_email", "email":
		return ColumnCustomerEmail, nil
	case "totalPrice", "total_price", "price":
		return ColumnTotalPrice, nil
	case "status":
		return ColumnStatus, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortColumn, value)
	}
}

// ParseDirection defaults to ascending when value is empty.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascend", "ascending":
		return Ascending, nil
	case "desc", "descend", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortDirection, value)
	}
}

// ParseSortKey parses a column and direction pair.
func ParseSortKey(column, direction string) (SortKey, error) {
	col, err := ParseColumn(column)
	if err != nil {
		return SortKey{}, err
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return SortKey{}, err
	}
	return SortKey{Column: col, Direction: dir}, nil
}

// Sort returns a stably sorted copy of orders. Ties keep their prior
// relative order in both directions, so re-sorting sorted rows is a no-op.
func Sort(orders []domain.Order, key SortKey) []domain.Order {
	sorted := slices.Clone(orders)
	compare := comparator(key.Column)
	if key.Direction == Descending {
		slices.SortStableFunc(sorted, func(a, b domain.Order) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}

func comparator(column Column) func(a, b domain.Order) int {
	switch column {
	case ColumnCustomerName:
		return func(a, b domain.Order) int { return strings.Compare(a.CustomerName, b.CustomerName) }
	case ColumnCustomerEmail:
		return func(a, b domain.Order) int { return strings.Compare(a.CustomerEmail, b.CustomerEmail) }
	case ColumnTotalPrice:
		return func(a, b domain.Order) int { return a.TotalPrice.Cmp(b.TotalPrice) }
	case ColumnStatus:
		return func(a, b domain.Order) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return func(a, b domain.Order) int { return strings.Compare(a.ID, b.ID) }
	}
}
