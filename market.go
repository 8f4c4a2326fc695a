package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
)

// MarketSegment identifies the trading venue category of an instrument.
// Each segment settles in exactly one currency.
type MarketSegment int

const (
	// AShare is a mainland-listed domestic equity, settled in CNY.
	AShare MarketSegment = iota
	// HKStock is a Hong-Kong listed equity, settled in HKD.
	HKStock
	// USStock is a US-listed equity, settled in USD.
	USStock
	// Fund is a domestic open-ended fund, settled in CNY.
	Fund
)

// segments lists all valid market segments in a stable order.
var segments = []MarketSegment{AShare, HKStock, USStock, Fund}

func (s MarketSegment) String() string {
	switch s {
	case AShare:
		return "a-share"
	case HKStock:
		return "hk-stock"
	case USStock:
		return "us-stock"
	case Fund:
		return "fund"
	default:
		return "unknown"
	}
}

// Currency returns the settlement currency for the segment.
func (s MarketSegment) Currency() string {
	switch s {
	case AShare, Fund:
		return "CNY"
	case HKStock:
		return "HKD"
	case USStock:
		return "USD"
	default:
		return ""
	}
}

// ParseMarketSegment parses a string into a MarketSegment.
func ParseMarketSegment(str string) (MarketSegment, error) {
	for _, s := range segments {
		if s.String() == str {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown market segment %q", ErrValidation, str)
}

// MarshalJSON implements the json.Marshaler interface for MarketSegment.
func (s MarketSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MarketSegment.
func (s *MarketSegment) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMarketSegment(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ValidateCurrency returns an error if the currency code is not a known ISO code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
