package tracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTransaction marshals a single trade and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %d: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction %d: %w", tx.ID, err)
	}
	return nil
}

// EncodeTransactions writes the trade log to an io.Writer in JSONL format,
// one trade per line, in creation order. Keys within each line are in the
// canonical order produced by Transaction.MarshalJSON.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransactions reads a stream of JSONL trades. The line order is the
// creation order and is preserved.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return transactions, nil
}

// EncodePositions writes the derived position table in JSONL format. The
// file is a cache: it is safe to delete, Resync rebuilds it from the log.
func EncodePositions(w io.Writer, positions []Position) error {
	for _, p := range positions {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal position %s: %w", p.Key(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write position %s: %w", p.Key(), err)
		}
	}
	return nil
}

// DecodePositions reads a stream of JSONL positions.
func DecodePositions(r io.Reader) ([]Position, error) {
	var positions []Position
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var p Position
		if err := json.Unmarshal(lineBytes, &p); err != nil {
			return nil, fmt.Errorf("could not decode position line %q: %w", string(lineBytes), err)
		}
		positions = append(positions, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return positions, nil
}
