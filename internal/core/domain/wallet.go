package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet represents a named ledger wallet. Its balance is derived from the
// sum of all transaction amounts belonging to it and never goes negative.
type Wallet struct {
	ID                uuid.UUID       `json:"id"`
	Label             string          `json:"label"`
	Balance           decimal.Decimal `json:"balance"`
	TransactionsCount int64           `json:"transactions_count"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CanApply reports whether crediting or debiting amount keeps the
// balance non-negative.
func (w *Wallet) CanApply(amount decimal.Decimal) bool {
	return w.Balance.Add(amount).Sign() >= 0
}
