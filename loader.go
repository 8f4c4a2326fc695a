package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names of the three durable collections inside a data directory.
const (
	transactionsFile = "transactions.jsonl" // the source of truth
	positionsFile    = "positions.jsonl"    // derived cache, safe to delete
	settingsFile     = "settings.json"      // cash balances and preferences
)

// Settings is the small keyed blob persisted alongside the ledger. It holds
// the cash balances and the user preferences.
type Settings struct {
	Cash              *CashLedger `json:"cash"`
	ReportingCurrency string      `json:"reportingCurrency,omitempty"`
}

// DirStore persists a book inside a single directory, one file per durable
// collection. Every commit rewrites the files through a temp-file-and-rename
// so a failed write never leaves a half-updated collection behind.
type DirStore struct {
	dir         string
	preferences Settings // non-cash settings carried across commits
}

// NewDirStore creates a store rooted at dir, creating it if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	s := &DirStore{dir: dir}
	if err := s.loadSettings(&s.preferences); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Commit implements the Store interface.
func (s *DirStore) Commit(transactions []Transaction, positions []Position, cash *CashLedger) error {
	var txBuf bytes.Buffer
	if err := EncodeTransactions(&txBuf, transactions); err != nil {
		return err
	}
	var posBuf bytes.Buffer
	if err := EncodePositions(&posBuf, positions); err != nil {
		return err
	}
	settings := s.preferences
	settings.Cash = cash
	settingsBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}

	if err := s.writeFile(transactionsFile, txBuf.Bytes()); err != nil {
		return err
	}
	if err := s.writeFile(positionsFile, posBuf.Bytes()); err != nil {
		return err
	}
	return s.writeFile(settingsFile, settingsBytes)
}

// SetReportingCurrency records the preferred currency for report totals.
// It takes effect on the next commit.
func (s *DirStore) SetReportingCurrency(currency string) { s.preferences.ReportingCurrency = currency }

// ReportingCurrency returns the preferred currency for report totals, CNY by default.
func (s *DirStore) ReportingCurrency() string {
	if s.preferences.ReportingCurrency == "" {
		return "CNY"
	}
	return s.preferences.ReportingCurrency
}

// writeFile writes content to a temp file in the same directory and renames
// it over the target, so readers never observe a partial file.
func (s *DirStore) writeFile(name string, content []byte) error {
	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file for %q: %w", target, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write %q: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not close %q: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace %q: %w", target, err)
	}
	return nil
}

// loadSettings reads the settings file into dst.
func (s *DirStore) loadSettings(dst *Settings) error {
	content, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, dst); err != nil {
		return fmt.Errorf("could not decode settings file: %w", err)
	}
	return nil
}

// Open loads a book from a data directory and attaches the directory store
// to it. A missing directory yields an empty book. A missing or unreadable
// derived cache is not an error: the position table and cash balances are
// rebuilt from the transaction log.
func Open(dir string) (*Book, error) {
	store, err := NewDirStore(dir)
	if err != nil {
		return nil, err
	}

	book := NewBook()

	content, err := os.ReadFile(filepath.Join(dir, transactionsFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// empty book
	case err != nil:
		return nil, fmt.Errorf("could not open ledger file: %w", err)
	default:
		transactions, err := DecodeTransactions(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		book.transactions = transactions
		for _, tx := range transactions {
			if tx.ID >= book.nextID {
				book.nextID = tx.ID + 1
			}
		}
	}

	if err := loadDerived(book, store); err != nil {
		// The cache is disposable: rebuild instead of failing.
		positions, cash, err := replay(book.transactions)
		if err != nil {
			return nil, err
		}
		book.positions = positions
		book.cash = cash
	}

	book.SetStore(store)
	return book, nil
}

// loadDerived fills the book's derived state from the cached files.
func loadDerived(book *Book, store *DirStore) error {
	content, err := os.ReadFile(filepath.Join(store.dir, positionsFile))
	if err != nil {
		return err
	}
	positions, err := DecodePositions(bytes.NewReader(content))
	if err != nil {
		return err
	}

	var settings Settings
	if err := store.loadSettings(&settings); err != nil {
		return err
	}
	if settings.Cash == nil {
		return fmt.Errorf("settings file has no cash balances")
	}

	for _, p := range positions {
		book.positions[p.Key()] = p
	}
	book.cash = settings.Cash
	return nil
}
