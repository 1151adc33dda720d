package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// transactionOrderingFields are the fields callers may order transaction listings by.
var transactionOrderingFields = map[string]struct{}{
	"amount":     {},
	"created_at": {},
}

// TransactionServiceImpl implements ports.TransactionService.
type TransactionServiceImpl struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		txRepo:     txRepo,
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// Create appends a ledger entry with pessimistic wallet locking.
// The balance check and both writes happen inside one database
// transaction; concurrent creations against the same wallet serialize on
// the row lock, so no interleaving can overdraw the wallet.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	// Business rule: the derived balance never goes negative
	newBalance := wallet.Balance.Add(req.Amount)
	if newBalance.Sign() < 0 {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  wallet.ID,
		TxID:      domain.NewTxID(),
		Amount:    req.Amount,
		CreatedAt: now,
	}

	// Persist: update wallet's derived balance
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	// Persist: append ledger entry
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperror.ErrDuplicateTxID(err)
		}
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("txid", txn.TxID).
		Str("wallet_id", wallet.ID.String()).
		Str("amount", req.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("transaction recorded")

	return txn, nil
}

// Get fetches a single transaction.
func (s *TransactionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// List fetches transactions with filtering, search, ordering, and pagination.
func (s *TransactionServiceImpl) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	if err := validateOrdering(params.Ordering, transactionOrderingFields); err != nil {
		return nil, 0, err
	}
	params.Normalize()

	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, total, nil
}

// ListByWallet fetches a wallet's transactions, newest first.
// It fails with NotFound when the wallet does not exist.
func (s *TransactionServiceImpl) ListByWallet(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, 0, apperror.ErrNotFound("wallet")
	}

	page, pageSize = ports.ClampPage(page, pageSize)
	txns, total, err := s.txRepo.List(ctx, ports.TransactionListParams{
		WalletID: &walletID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list wallet transactions: %w", err))
	}
	return txns, total, nil
}
