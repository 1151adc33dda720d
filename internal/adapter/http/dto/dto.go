package dto

import (
	"github.com/shopspring/decimal"
)

// CreateWalletRequest is the request body for POST /wallets.
type CreateWalletRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// UpdateWalletRequest is the request body for PUT/PATCH /wallets/:id.
// Label is the only mutable wallet field.
type UpdateWalletRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// CreateTransactionRequest is the request body for POST /transactions.
// Amount is a pointer so that an explicit zero passes the required check;
// decimal.Decimal unmarshals digit-exact from both JSON strings and numbers.
type CreateTransactionRequest struct {
	Wallet string           `json:"wallet" binding:"required,uuid"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// WalletResponse is the wallet representation returned by list and write
// endpoints. Balance is a fixed-point decimal string with 18 fractional digits.
type WalletResponse struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Balance           string `json:"balance"`
	TransactionsCount int64  `json:"transactions_count"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// WalletDetailResponse extends WalletResponse with the wallet's newest
// transactions, returned by GET /wallets/:id.
type WalletDetailResponse struct {
	WalletResponse
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// TransactionResponse is the ledger entry representation.
type TransactionResponse struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	TxID      string `json:"txid"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// PaginatedResponse is the envelope shared by every list endpoint.
// Next and Previous are absolute URLs, null when the page does not exist.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
