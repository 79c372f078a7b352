package inventory

import (
	"strings"

	"bondyard-backend/internal/models"

	"github.com/shopspring/decimal"
)

// OnHand folds a vehicle's movements into the current balance: inward rows
// add, outward rows subtract. The balance is derived on every read and never
// stored. A vehicle without movements balances to zero.
//
// Quantities live in the database as text. New rows are validated on the way
// in, but legacy rows may hold values that no longer parse; those count as
// zero instead of poisoning the whole balance.
func OnHand(movements []models.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		qty, err := decimal.NewFromString(strings.TrimSpace(m.Quantity))
		if err != nil {
			continue
		}
		switch m.Type {
		case models.MovementInward:
			total = total.Add(qty)
		case models.MovementOutward:
			total = total.Sub(qty)
		}
	}
	return total
}
