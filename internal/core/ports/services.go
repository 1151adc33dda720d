package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// WalletService defines wallet lifecycle and read operations.
type WalletService interface {
	Create(ctx context.Context, label string) (*domain.Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	// GetDetail returns the wallet together with its most recent transactions.
	GetDetail(ctx context.Context, id uuid.UUID) (*WalletDetail, error)
	Update(ctx context.Context, id uuid.UUID, label string) (*domain.Wallet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params WalletListParams) ([]domain.Wallet, int64, error)
}

// WalletDetail is a wallet enriched with its newest transactions.
type WalletDetail struct {
	Wallet             domain.Wallet
	RecentTransactions []domain.Transaction
}

// TransactionService defines the append-only ledger operations.
type TransactionService interface {
	// Create appends a transaction and atomically re-derives the wallet
	// balance. It fails without side effects when the resulting balance
	// would be negative.
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error)
}

// CreateTransactionRequest holds validated input for transaction creation.
type CreateTransactionRequest struct {
	WalletID uuid.UUID
	Amount   decimal.Decimal
}
