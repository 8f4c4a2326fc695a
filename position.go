package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PositionKey identifies one holding: the same code on two market segments
// (e.g. a dual-listed name) is two distinct positions.
type PositionKey struct {
	Security string
	Segment  MarketSegment
}

func (k PositionKey) String() string {
	return fmt.Sprintf("%s/%s", k.Security, k.Segment)
}

// Position is the derived aggregate for one instrument within one market
// segment. It is owned exclusively by the reconciliation engine: callers
// read it, never write it. A position with zero quantity is deleted, not
// retained.
type Position struct {
	Security string        // instrument code
	Name     string        // display name from the most recent trade
	Segment  MarketSegment // market segment, resolves the currency
	Quantity Quantity      // net of all buys minus sells, always positive
	AvgCost  Money         // weighted average purchase price per unit
}

// Key returns the table key of the position.
func (p Position) Key() PositionKey {
	return PositionKey{Security: p.Security, Segment: p.Segment}
}

// Currency returns the settlement currency of the position.
func (p Position) Currency() string { return p.Segment.Currency() }

// CostBasis returns the total cost of the remaining shares.
func (p Position) CostBasis() Money { return p.AvgCost.Mul(p.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("security", p.Security)
	w.Optional("name", p.Name)
	w.Append("segment", p.Segment)
	w.Append("quantity", p.Quantity)
	w.Append("avgCost", p.AvgCost.value)
	w.Append("currency", p.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Position.
func (p *Position) UnmarshalJSON(data []byte) error {
	var temp struct {
		Security string          `json:"security"`
		Name     string          `json:"name"`
		Segment  MarketSegment   `json:"segment"`
		Quantity Quantity        `json:"quantity"`
		AvgCost  decimal.Decimal `json:"avgCost"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	p.Security = temp.Security
	p.Name = temp.Name
	p.Segment = temp.Segment
	p.Quantity = temp.Quantity
	p.AvgCost = M(temp.AvgCost, temp.Segment.Currency())
	return nil
}
