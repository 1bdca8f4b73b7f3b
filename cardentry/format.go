package cardentry

import (
	"github.com/alovak/cardentry-playground/cardentry/models"
	"github.com/alovak/cardentry-playground/internal/cardnum"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrencySymbol = "£"
	EmptyListPlaceholder  = "No cards added yet."

	submitLabelIdle    = "Add Card"
	submitLabelLoading = "Adding Card..."
)

// MaskCardNumber shows only the last four characters of a stored card number.
func MaskCardNumber(number string) string {
	return cardnum.Mask(number)
}

// FormatMoney renders d with two fixed decimals behind the currency symbol.
func FormatMoney(d decimal.Decimal, symbol string) string {
	return symbol + d.StringFixed(2)
}

func cardRows(cards []models.CardRecord, symbol string) []models.CardRow {
	rows := make([]models.CardRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, models.CardRow{
			ID:          c.ID,
			Name:        c.Name,
			CardNumber:  MaskCardNumber(c.CardNumber),
			CreditLimit: FormatMoney(c.CreditLimit, symbol),
			Balance:     FormatMoney(c.Balance, symbol),
		})
	}
	return rows
}
