package tracker

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"
	"time"
)

// Store persists the book's three durable collections as one unit.
// A nil store keeps the book in memory only.
type Store interface {
	// Commit durably replaces the transaction log, the derived position
	// table and the cash balances. It must either fully succeed or leave
	// the previously committed state untouched.
	Commit(transactions []Transaction, positions []Position, cash *CashLedger) error
}

// Book is the transaction ledger and its reconciliation engine. It owns the
// ordered trade log and the state derived from it: the position table and the
// per-currency cash balances. Derived state is never written directly by
// callers; it is a function of the log, maintained incrementally on every
// mutation and recomputable from scratch with Resync.
//
// All mutations are serialized and atomic: a trade row never exists without
// its position and cash effect, and a failed mutation leaves no trace.
type Book struct {
	mu           sync.Mutex
	transactions []Transaction // in creation order
	nextID       int64
	positions    map[PositionKey]Position
	cash         *CashLedger
	store        Store
}

// NewBook creates an empty in-memory book.
func NewBook() *Book {
	return &Book{
		nextID:    1,
		positions: make(map[PositionKey]Position),
		cash:      NewCashLedger(),
	}
}

// SetStore attaches a persistence store. Subsequent mutations commit to it
// before they become visible.
func (b *Book) SetStore(s Store) { b.store = s }

// Add validates the trade, appends it to the log and applies its effect to
// the position table and cash balances in the same atomic unit. It returns
// the id assigned to the new row.
func (b *Book) Add(tx Transaction) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := tx.Validate()
	if err != nil {
		return 0, err
	}

	positions := maps.Clone(b.positions)
	cash := b.cash.clone()
	if err := apply(positions, cash, tx); err != nil {
		return 0, err
	}

	tx.ID = b.nextID
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	staged := make([]Transaction, 0, len(b.transactions)+1)
	staged = append(staged, b.transactions...)
	staged = append(staged, tx)

	if err := b.commit(staged, positions, cash); err != nil {
		return 0, err
	}
	b.nextID++
	return tx.ID, nil
}

// Update replaces the fields of an existing trade. It always fully reverses
// the stored trade's effect first, then applies the new values as if newly
// added: overwriting fields in place would corrupt derived state whenever
// price, quantity or kind changes.
func (b *Book) Update(id int64, tx Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	tx, err := tx.Validate()
	if err != nil {
		return err
	}

	old := b.transactions[i]
	positions := maps.Clone(b.positions)
	cash := b.cash.clone()
	if err := reverse(positions, cash, old); err != nil {
		return err
	}
	if err := apply(positions, cash, tx); err != nil {
		return err
	}

	tx.ID = old.ID
	tx.CreatedAt = old.CreatedAt
	tx.UpdatedAt = time.Now().UTC()

	staged := slices.Clone(b.transactions)
	staged[i] = tx

	return b.commit(staged, positions, cash)
}

// Delete reverses the trade's effect on positions and cash and removes the
// row from the log.
func (b *Book) Delete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	positions := maps.Clone(b.positions)
	cash := b.cash.clone()
	if err := reverse(positions, cash, b.transactions[i]); err != nil {
		return err
	}

	staged := slices.Delete(slices.Clone(b.transactions), i, i+1)

	return b.commit(staged, positions, cash)
}

// Resync discards all derived state and rebuilds it by replaying the full
// transaction log in creation order. It is all-or-nothing: a malformed row
// aborts the whole resync and leaves the previous derived state untouched.
// Any valid sequence of Add, Update and Delete calls leaves the book in the
// state Resync computes from the resulting log.
func (b *Book) Resync() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	positions, cash, err := replay(b.transactions)
	if err != nil {
		return err
	}
	return b.commit(b.transactions, positions, cash)
}

// commit persists the staged state and, only then, swaps it in.
func (b *Book) commit(transactions []Transaction, positions map[PositionKey]Position, cash *CashLedger) error {
	if b.store != nil {
		if err := b.store.Commit(transactions, sortedPositions(positions), cash); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}
	b.transactions = transactions
	b.positions = positions
	b.cash = cash
	return nil
}

// indexOf returns the index of the transaction with the given id, or -1.
func (b *Book) indexOf(id int64) int {
	return slices.IndexFunc(b.transactions, func(tx Transaction) bool { return tx.ID == id })
}

// Get returns the transaction with the given id.
func (b *Book) Get(id int64) (Transaction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return Transaction{}, false
	}
	return b.transactions[i], true
}

// Transactions returns an iterator over all trades in creation order.
func (b *Book) Transactions() iter.Seq[Transaction] {
	b.mu.Lock()
	txs := slices.Clone(b.transactions)
	b.mu.Unlock()
	return func(yield func(Transaction) bool) {
		for _, tx := range txs {
			if !yield(tx) {
				return
			}
		}
	}
}

// Positions returns an iterator over current holdings, sorted by key.
// Positions with zero quantity do not exist and are never yielded.
func (b *Book) Positions() iter.Seq[Position] {
	b.mu.Lock()
	positions := sortedPositions(b.positions)
	b.mu.Unlock()
	return func(yield func(Position) bool) {
		for _, p := range positions {
			if !yield(p) {
				return
			}
		}
	}
}

// Position returns the current holding for a key.
func (b *Book) Position(key PositionKey) (Position, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.positions[key]
	return p, ok
}

// CashBalance returns the cash balance for one currency, zero if unseen.
func (b *Book) CashBalance(currency string) Money {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cash.Balance(currency)
}

// CashBalances returns an independent copy of all cash balances.
func (b *Book) CashBalances() *CashLedger {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cash.clone()
}

// sortedPositions flattens the position table into a deterministic slice.
func sortedPositions(positions map[PositionKey]Position) []Position {
	keys := slices.Collect(maps.Keys(positions))
	slices.SortFunc(keys, func(a, b PositionKey) int {
		if a.Security != b.Security {
			if a.Security < b.Security {
				return -1
			}
			return 1
		}
		return int(a.Segment) - int(b.Segment)
	})
	out := make([]Position, 0, len(keys))
	for _, k := range keys {
		out = append(out, positions[k])
	}
	return out
}
