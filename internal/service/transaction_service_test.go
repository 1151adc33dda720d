package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transactionTestDeps struct {
	svc        *TransactionServiceImpl
	txRepo     *mocks.MockTransactionRepository
	walletRepo *mocks.MockWalletRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupTransactionService(t *testing.T) *transactionTestDeps {
	ctrl := gomock.NewController(t)
	d := &transactionTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewTransactionService(d.txRepo, d.walletRepo, d.transactor, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// decimalEq matches a decimal argument by numeric value rather than by
// its internal representation.
func decimalEq(want string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		got, ok := x.(decimal.Decimal)
		if !ok {
			return false
		}
		return got.Equal(decimal.RequireFromString(want))
	})
}

// ==================== Create Tests ====================

func TestTransactionService_Create_Debit(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.RequireFromString("-6.00"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		Label:   "operations",
		Balance: decimal.RequireFromString("10.00"),
	}, nil)
	// 10.00 - 6.00 = 4.00
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, decimalEq("4.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, walletID, result.WalletID)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.NotEmpty(t, result.TxID)
	assert.True(t, result.Amount.Equal(req.Amount))
}

func TestTransactionService_Create_DebitToExactlyZero(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.RequireFromString("-10.00"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		Balance: decimal.RequireFromString("10.00"),
	}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, decimalEq("0")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestTransactionService_Create_ZeroAmount(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.Zero,
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		Balance: decimal.RequireFromString("10.00"),
	}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, decimalEq("10.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	result, err := d.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Amount.IsZero())
}

func TestTransactionService_Create_InvalidAmount(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	// 19 fractional digits exceeds the supported scale.
	req := ports.CreateTransactionRequest{
		WalletID: uuid.New(),
		Amount:   decimal.RequireFromString("0.0000000000000000001"),
	}

	result, err := d.svc.Create(context.Background(), req)
	assert.Nil(t, result)
	require.Error(t, err)
	assertAppError(t, err, "LGR_001")
}

func TestTransactionService_Create_AmountTooLarge(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	req := ports.CreateTransactionRequest{
		WalletID: uuid.New(),
		Amount:   decimal.RequireFromString("10000000000"),
	}

	result, err := d.svc.Create(context.Background(), req)
	assert.Nil(t, result)
	assertAppError(t, err, "LGR_001")
}

func TestTransactionService_Create_WalletNotFound(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.RequireFromString("5.00"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(nil, nil)

	result, err := d.svc.Create(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "LGR_003")
}

func TestTransactionService_Create_InsufficientBalance(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	// Overdraws by a single unit at the smallest supported scale.
	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.RequireFromString("-10.000000000000000001"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		Balance: decimal.RequireFromString("10.00"),
	}, nil)

	result, err := d.svc.Create(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "LGR_002")
}

func TestTransactionService_Create_DuplicateTxID(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.CreateTransactionRequest{
		WalletID: walletID,
		Amount:   decimal.RequireFromString("2.50"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:      walletID,
		Balance: decimal.RequireFromString("1.50"),
	}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, decimalEq("4.00")).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

	result, err := d.svc.Create(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "LGR_004")
}

func TestTransactionService_Create_BeginError(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	req := ports.CreateTransactionRequest{
		WalletID: uuid.New(),
		Amount:   decimal.RequireFromString("1.00"),
	}

	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	result, err := d.svc.Create(ctx, req)
	assert.Nil(t, result)
	assertAppError(t, err, "SYS_001")
}

// ==================== Get Tests ====================

func TestTransactionService_Get_Success(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txnID := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, txnID).Return(&domain.Transaction{
		ID:     txnID,
		TxID:   "d2c7a8e0-0f6b-4a3e-9c1d-5e8f7a6b4c3d",
		Amount: decimal.RequireFromString("3.14"),
	}, nil)

	result, err := d.svc.Get(ctx, txnID)
	require.NoError(t, err)
	assert.Equal(t, txnID, result.ID)
}

func TestTransactionService_Get_NotFound(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txnID := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, txnID).Return(nil, nil)

	result, err := d.svc.Get(ctx, txnID)
	assert.Nil(t, result)
	assertAppError(t, err, "LGR_003")
}

// ==================== List Tests ====================

func TestTransactionService_List_NormalizesPaging(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.txRepo.EXPECT().List(ctx, ports.TransactionListParams{
		Ordering: "amount",
		Page:     1,
		PageSize: ports.DefaultPageSize,
	}).Return([]domain.Transaction{}, int64(0), nil)

	_, total, err := d.svc.List(ctx, ports.TransactionListParams{Ordering: "amount"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestTransactionService_List_UnknownOrdering(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	_, _, err := d.svc.List(context.Background(), ports.TransactionListParams{Ordering: "-wallet"})
	assertAppError(t, err, "LGR_001")
}

// ==================== ListByWallet Tests ====================

func TestTransactionService_ListByWallet_Success(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.txRepo.EXPECT().List(ctx, ports.TransactionListParams{
		WalletID: &walletID,
		Page:     2,
		PageSize: 10,
	}).Return([]domain.Transaction{{ID: uuid.New(), WalletID: walletID}}, int64(11), nil)

	txns, total, err := d.svc.ListByWallet(ctx, walletID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, int64(11), total)
}

func TestTransactionService_ListByWallet_ClampsPageSize(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.txRepo.EXPECT().List(ctx, ports.TransactionListParams{
		WalletID: &walletID,
		Page:     1,
		PageSize: ports.MaxPageSize,
	}).Return([]domain.Transaction{}, int64(0), nil)

	_, _, err := d.svc.ListByWallet(ctx, walletID, 0, 500)
	require.NoError(t, err)
}

func TestTransactionService_ListByWallet_WalletNotFound(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	txns, total, err := d.svc.ListByWallet(ctx, walletID, 1, 20)
	assert.Nil(t, txns)
	assert.Equal(t, int64(0), total)
	assertAppError(t, err, "LGR_003")
}

// ==================== Helper ====================

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
