package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a trade.
type Kind int

const (
	// Buy acquires shares, debiting cash by amount plus commission.
	Buy Kind = iota
	// Sell disposes shares, crediting cash by amount minus commission.
	Sell
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(str string) (Kind, error) {
	switch str {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: unknown trade kind %q", ErrValidation, str)
	}
}

// MarshalJSON implements the json.Marshaler interface for Kind.
func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface for Kind.
func (k *Kind) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// StatusCompleted is the only settlement status recorded today. The field is
// kept on the wire so settled and pending trades can coexist later.
const StatusCompleted = "completed"

// Transaction is one recorded trade. It is immutable between explicit edits:
// callers change it only through Book.Update, which replays its effect.
type Transaction struct {
	ID         int64         // unique, assigned by Book.Add
	Date       Date          // trade date
	Kind       Kind          // buy or sell
	Security   string        // instrument code, e.g. "600519" or "AAPL"
	Name       string        // display name
	Segment    MarketSegment // resolves the settlement currency
	UnitPrice  Money         // price per share, in the segment currency
	Quantity   Quantity      // number of shares, a positive whole number
	Commission Money         // broker fee, non negative
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates an unsaved trade with the segment currency resolved.
func NewTransaction(day Date, kind Kind, security, name string, segment MarketSegment, price float64, quantity int64, commission float64) Transaction {
	cur := segment.Currency()
	return Transaction{
		Date:       day,
		Kind:       kind,
		Security:   security,
		Name:       name,
		Segment:    segment,
		UnitPrice:  M(price, cur),
		Quantity:   Q(quantity),
		Commission: M(commission, cur),
		Status:     StatusCompleted,
	}
}

// Currency returns the settlement currency, resolved from the market segment.
func (t Transaction) Currency() string { return t.Segment.Currency() }

// Amount returns the trade amount: unit price times quantity, commission excluded.
func (t Transaction) Amount() Money { return t.UnitPrice.Mul(t.Quantity) }

// GrossCost returns the cash debited by a buy: amount plus commission.
func (t Transaction) GrossCost() Money { return t.Amount().Add(t.Commission) }

// NetProceeds returns the cash credited by a sell: amount minus commission.
func (t Transaction) NetProceeds() Money { return t.Amount().Sub(t.Commission) }

// Key returns the position key this trade contributes to.
func (t Transaction) Key() PositionKey {
	return PositionKey{Security: t.Security, Segment: t.Segment}
}

// Validate checks the trade fields and applies quick fixes (empty currencies
// resolve to the segment currency, empty status defaults to completed).
// It returns the fixed transaction, or an error wrapping ErrValidation.
func (t Transaction) Validate() (Transaction, error) {
	if t.Kind != Buy && t.Kind != Sell {
		return t, fmt.Errorf("%w: unknown trade kind %d", ErrValidation, t.Kind)
	}
	if t.Security == "" {
		return t, fmt.Errorf("%w: security code is missing", ErrValidation)
	}
	if t.Segment.Currency() == "" {
		return t, fmt.Errorf("%w: unknown market segment %d", ErrValidation, t.Segment)
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}

	cur := t.Segment.Currency()
	if t.UnitPrice.Currency() == "" {
		t.UnitPrice = M(t.UnitPrice.value, cur)
	} else if t.UnitPrice.Currency() != cur {
		return t, fmt.Errorf("%w: price currency %s does not match segment currency %s", ErrValidation, t.UnitPrice.Currency(), cur)
	}
	if !t.UnitPrice.IsPositive() {
		return t, fmt.Errorf("%w: unit price must be positive, got %s", ErrValidation, t.UnitPrice.value)
	}

	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("%w: quantity must be positive, got %s", ErrValidation, t.Quantity)
	}
	if !t.Quantity.IsInteger() {
		return t, fmt.Errorf("%w: quantity must be a whole number of shares, got %s", ErrValidation, t.Quantity)
	}

	if t.Commission.Currency() == "" {
		t.Commission = M(t.Commission.value, cur)
	} else if t.Commission.Currency() != cur {
		return t, fmt.Errorf("%w: commission currency %s does not match segment currency %s", ErrValidation, t.Commission.Currency(), cur)
	}
	if t.Commission.IsNegative() {
		return t, fmt.Errorf("%w: commission cannot be negative, got %s", ErrValidation, t.Commission.value)
	}

	if t.Status == "" {
		t.Status = StatusCompleted
	}
	return t, nil
}

// Equal reports whether two transactions carry the same recorded trade.
// Timestamps are ignored, they only track record lifecycle.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Date == o.Date &&
		t.Kind == o.Kind &&
		t.Security == o.Security &&
		t.Name == o.Name &&
		t.Segment == o.Segment &&
		t.UnitPrice.Equal(o.UnitPrice) &&
		t.Quantity.Equal(o.Quantity) &&
		t.Commission.Equal(o.Commission) &&
		t.Status == o.Status
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
// Keys are emitted in a stable order so the ledger file is canonical, and the
// derived amount is stored alongside the trade for audit.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("kind", t.Kind)
	w.Append("security", t.Security)
	w.Optional("name", t.Name)
	w.Append("segment", t.Segment)
	w.Append("price", t.UnitPrice.value)
	w.Append("quantity", t.Quantity)
	w.Append("commission", t.Commission.value)
	w.Append("amount", t.Amount().value)
	w.Append("status", t.Status)
	if !t.CreatedAt.IsZero() {
		w.Append("createdAt", t.CreatedAt.UTC().Format(time.RFC3339))
	}
	if !t.UpdatedAt.IsZero() {
		w.Append("updatedAt", t.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// The stored amount is ignored on read: it is always recomputed from price
// and quantity so an edited file cannot introduce drift.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID         int64           `json:"id"`
		Date       Date            `json:"date"`
		Kind       Kind            `json:"kind"`
		Security   string          `json:"security"`
		Name       string          `json:"name"`
		Segment    MarketSegment   `json:"segment"`
		Price      decimal.Decimal `json:"price"`
		Quantity   Quantity        `json:"quantity"`
		Commission decimal.Decimal `json:"commission"`
		Status     string          `json:"status"`
		CreatedAt  string          `json:"createdAt"`
		UpdatedAt  string          `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	cur := temp.Segment.Currency()
	t.ID = temp.ID
	t.Date = temp.Date
	t.Kind = temp.Kind
	t.Security = temp.Security
	t.Name = temp.Name
	t.Segment = temp.Segment
	t.UnitPrice = M(temp.Price, cur)
	t.Quantity = temp.Quantity
	t.Commission = M(temp.Commission, cur)
	t.Status = temp.Status

	if temp.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339, temp.CreatedAt)
		if err != nil {
			return fmt.Errorf("invalid createdAt %q: %w", temp.CreatedAt, err)
		}
		t.CreatedAt = created
	}
	if temp.UpdatedAt != "" {
		updated, err := time.Parse(time.RFC3339, temp.UpdatedAt)
		if err != nil {
			return fmt.Errorf("invalid updatedAt %q: %w", temp.UpdatedAt, err)
		}
		t.UpdatedAt = updated
	}
	return nil
}
