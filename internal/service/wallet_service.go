package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxLabelLength bounds wallet labels, matching the varchar(255) column.
const maxLabelLength = 255

// recentTransactionsLimit is how many newest entries a wallet detail carries.
const recentTransactionsLimit = 10

// walletOrderingFields are the fields callers may order wallet listings by.
var walletOrderingFields = map[string]struct{}{
	"label":      {},
	"balance":    {},
	"created_at": {},
	"updated_at": {},
}

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		log:        log,
	}
}

// Create persists a new wallet with a zero balance.
func (s *WalletServiceImpl) Create(ctx context.Context, label string) (*domain.Wallet, error) {
	label, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &domain.Wallet{
		ID:        uuid.New(),
		Label:     label,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.walletRepo.Create(ctx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("label", w.Label).
		Msg("wallet created")

	return w, nil
}

// Get fetches a single wallet.
func (s *WalletServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return w, nil
}

// GetDetail fetches a wallet together with its newest transactions.
func (s *WalletServiceImpl) GetDetail(ctx context.Context, id uuid.UUID) (*ports.WalletDetail, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.txRepo.List(ctx, ports.TransactionListParams{
		WalletID: &w.ID,
		Page:     1,
		PageSize: recentTransactionsLimit,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list recent transactions: %w", err))
	}

	return &ports.WalletDetail{
		Wallet:             *w,
		RecentTransactions: recent,
	}, nil
}

// Update renames a wallet. The balance is never directly settable.
func (s *WalletServiceImpl) Update(ctx context.Context, id uuid.UUID, label string) (*domain.Wallet, error) {
	label, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}

	existing, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if existing == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	if err := s.walletRepo.UpdateLabel(ctx, id, label); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet label: %w", err))
	}

	updated, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload wallet: %w", err))
	}
	if updated == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	s.log.Info().
		Str("wallet_id", id.String()).
		Str("label", label).
		Msg("wallet relabeled")

	return updated, nil
}

// Delete removes a wallet and cascades its transactions.
func (s *WalletServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if existing == nil {
		return apperror.ErrNotFound("wallet")
	}

	if err := s.walletRepo.Delete(ctx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("delete wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", id.String()).
		Int64("transactions", existing.TransactionsCount).
		Msg("wallet deleted")

	return nil
}

// List fetches wallets with filtering, search, ordering, and pagination.
func (s *WalletServiceImpl) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	if err := validateOrdering(params.Ordering, walletOrderingFields); err != nil {
		return nil, 0, err
	}
	params.Normalize()

	wallets, total, err := s.walletRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, total, nil
}

// normalizeLabel trims a label and enforces its bounds.
func normalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", apperror.Validation("label must not be empty")
	}
	if utf8.RuneCountInString(label) > maxLabelLength {
		return "", apperror.Validation(fmt.Sprintf("label must be at most %d characters", maxLabelLength))
	}
	return label, nil
}

// validateOrdering rejects ordering values outside the allowed field set.
func validateOrdering(ordering string, fields map[string]struct{}) error {
	if ordering == "" {
		return nil
	}
	field := strings.TrimPrefix(ordering, "-")
	if _, ok := fields[field]; !ok {
		return apperror.Validation(fmt.Sprintf("unknown ordering field: %s", field))
	}
	return nil
}
