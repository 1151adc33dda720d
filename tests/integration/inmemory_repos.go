package integration

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// memStore holds all ledger state behind one lock. The wallet and
// transaction repos share it so transactions_count and cascade deletes
// stay consistent.
type memStore struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
	txns    map[uuid.UUID]*domain.Transaction
}

func newMemStore() *memStore {
	return &memStore{
		wallets: make(map[uuid.UUID]*domain.Wallet),
		txns:    make(map[uuid.UUID]*domain.Transaction),
	}
}

// countTxns counts a wallet's transactions. Caller holds the lock.
func (s *memStore) countTxns(walletID uuid.UUID) int64 {
	var n int64
	for _, t := range s.txns {
		if t.WalletID == walletID {
			n++
		}
	}
	return n
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct{ store *memStore }

func newInMemoryWalletRepo(store *memStore) *inMemoryWalletRepo {
	return &inMemoryWalletRepo{store: store}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *w
	r.store.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	cp.TransactionsCount = r.store.countTxns(id)
	return &cp, nil
}

// GetByIDForUpdate relies on the transactor's global lock for mutual
// exclusion, standing in for SELECT FOR UPDATE.
func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) UpdateLabel(ctx context.Context, id uuid.UUID, label string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.wallets[id]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Label = label
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.Balance = balance
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.wallets[id]; !ok {
		return fmt.Errorf("wallet not found")
	}
	delete(r.store.wallets, id)
	// Cascade, as the FK does in postgres
	for txID, t := range r.store.txns {
		if t.WalletID == id {
			delete(r.store.txns, txID)
		}
	}
	return nil
}

func (r *inMemoryWalletRepo) List(ctx context.Context, params ports.WalletListParams) ([]domain.Wallet, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Wallet, 0, len(r.store.wallets))
	for _, w := range r.store.wallets {
		if params.Label != "" && w.Label != params.Label {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(w.Label), strings.ToLower(params.Search)) {
			continue
		}
		cp := *w
		cp.TransactionsCount = r.store.countTxns(w.ID)
		result = append(result, cp)
	}
	total := int64(len(result))

	sortWallets(result, params.Ordering)
	return pageSlice(result, params.Page, params.PageSize), total, nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct{ store *memStore }

func newInMemoryTransactionRepo(store *memStore) *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{store: store}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.txns {
		if existing.TxID == txn.TxID {
			// Same error shape the txid unique index produces
			return &pgconn.PgError{Code: "23505", ConstraintName: "transactions_txid_key"}
		}
	}
	cp := *txn
	r.store.txns[txn.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.txns[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Transaction, 0, len(r.store.txns))
	for _, t := range r.store.txns {
		if params.WalletID != nil && t.WalletID != *params.WalletID {
			continue
		}
		if params.TxID != "" && t.TxID != params.TxID {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(t.TxID), strings.ToLower(params.Search)) {
			continue
		}
		result = append(result, *t)
	}
	total := int64(len(result))

	sortTransactions(result, params.Ordering)
	return pageSlice(result, params.Page, params.PageSize), total, nil
}

// --- Ordering and paging helpers ---

func sortWallets(ws []domain.Wallet, ordering string) {
	if ordering == "" {
		ordering = "-created_at"
	}
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	sort.SliceStable(ws, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch field {
		case "label":
			return ws[i].Label < ws[j].Label
		case "balance":
			return ws[i].Balance.LessThan(ws[j].Balance)
		case "updated_at":
			return ws[i].UpdatedAt.Before(ws[j].UpdatedAt)
		default:
			return ws[i].CreatedAt.Before(ws[j].CreatedAt)
		}
	})
}

func sortTransactions(ts []domain.Transaction, ordering string) {
	if ordering == "" {
		ordering = "-created_at"
	}
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	sort.SliceStable(ts, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch field {
		case "amount":
			return ts[i].Amount.LessThan(ts[j].Amount)
		default:
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
	})
}

func pageSlice[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- In-Memory Transactor ---

// inMemoryTransactor serializes transaction blocks with one lock held
// from Begin until Commit or Rollback, emulating the row lock a real
// SELECT FOR UPDATE takes. Concurrent transaction creation therefore
// behaves exactly as it does against postgres.
type inMemoryTransactor struct {
	mu sync.Mutex
}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &memTx{release: t.mu.Unlock}, nil
}

// memTx releases the transactor lock exactly once, whether the block
// ends in Commit or the deferred Rollback.
type memTx struct {
	noopTx
	once    sync.Once
	release func()
}

func (t *memTx) Commit(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
