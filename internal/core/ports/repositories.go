package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateLabel(ctx context.Context, id uuid.UUID, label string) error
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
}

// TransactionRepository defines persistence operations for ledger transactions.
// Create runs inside the wallet-locking database transaction.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// WalletListParams holds filter + ordering + pagination for listing wallets.
// Ordering is a validated field name with optional "-" prefix for descending.
type WalletListParams struct {
	Label    string // exact label match, empty = no filter
	Search   string // case-insensitive substring match over label
	Ordering string // empty = "-created_at"
	Page     int
	PageSize int
}

// TransactionListParams holds filter + ordering + pagination for listing transactions.
type TransactionListParams struct {
	WalletID *uuid.UUID
	TxID     string // exact txid match, empty = no filter
	Search   string // case-insensitive substring match over txid
	Ordering string // empty = "-created_at"
	Page     int
	PageSize int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
