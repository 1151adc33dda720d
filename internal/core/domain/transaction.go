package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountScale is the maximum number of fractional digits an amount may
// carry; amounts are stored as NUMERIC(28,18).
const AmountScale = 18

// AmountMaxIntegerDigits is the maximum number of digits allowed left of
// the decimal point (28 total digits minus 18 fractional).
const AmountMaxIntegerDigits = 10

// Transaction represents an immutable, append-only ledger entry. The
// amount may be positive, negative, or zero; a transaction is never
// updated or deleted while its wallet lives.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"wallet"`
	TxID      string          `json:"txid"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTxID generates a globally unique external transaction identifier.
func NewTxID() string {
	return uuid.NewString()
}

// ValidAmount reports whether d fits in NUMERIC(28,18) without loss.
func ValidAmount(d decimal.Decimal) bool {
	if d.Exponent() < -AmountScale {
		return false
	}
	limit := decimal.New(1, AmountMaxIntegerDigits)
	return d.Abs().LessThan(limit)
}
