package models

import "github.com/shopspring/decimal"

// CardRecord is a card as stored by the backend. The client never edits it.
type CardRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	CardNumber  string          `json:"cardNumber"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Balance     decimal.Decimal `json:"balance"`
}

// CreateCard is the body of a create request.
type CreateCard struct {
	Name        string  `json:"name"`
	CardNumber  string  `json:"cardNumber"`
	CreditLimit float64 `json:"creditLimit"`
}
