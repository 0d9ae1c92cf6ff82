package models

import (
	"github.com/shopspring/decimal"
)

// Order is one purchase notification as carried on the confirmation queue.
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Total         decimal.Decimal
	Items         []LineItem
}

// LineItem is one product line. LineTotal is computed upstream and is never
// recalculated here.
type LineItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
