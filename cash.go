package tracker

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// CashLedger holds one running balance per currency. It is a plain keyed
// map, not a ledger of cash movements: history is recomputable from the
// transaction log. Balances change only as a side effect of trade
// mutations, so Adjust trusts the computed delta and never validates it.
type CashLedger struct {
	balances map[string]decimal.Decimal
}

// NewCashLedger creates an empty cash ledger.
func NewCashLedger() *CashLedger {
	return &CashLedger{balances: make(map[string]decimal.Decimal)}
}

// Balance returns the balance for a currency, zero if the currency was never seen.
func (c *CashLedger) Balance(currency string) Money {
	return M(c.balances[currency], currency)
}

// Adjust adds a signed delta to the balance of the delta's currency.
func (c *CashLedger) Adjust(delta Money) {
	c.balances[delta.Currency()] = c.balances[delta.Currency()].Add(delta.value)
}

// Currencies iterates over all currencies ever adjusted, in sorted order.
func (c *CashLedger) Currencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		currencies := slices.Collect(maps.Keys(c.balances))
		slices.Sort(currencies)
		for _, currency := range currencies {
			if !yield(currency) {
				return
			}
		}
	}
}

// clone returns an independent copy, used to stage a mutation.
func (c *CashLedger) clone() *CashLedger {
	return &CashLedger{balances: maps.Clone(c.balances)}
}

// MarshalJSON implements the json.Marshaler interface for CashLedger.
// Keys are emitted in sorted order for a canonical settings file.
func (c *CashLedger) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for currency := range c.Currencies() {
		w.Append(currency, c.balances[currency])
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for CashLedger.
func (c *CashLedger) UnmarshalJSON(data []byte) error {
	balances := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(data, &balances); err != nil {
		return err
	}
	c.balances = balances
	return nil
}
