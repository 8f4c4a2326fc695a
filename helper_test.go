package tracker

// CNY is a helper for tests to create yuan money from const.
func CNY(v float64) Money { return M(v, "CNY") }

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// HKD is a helper for tests to create hong-kong dollar money from const.
func HKD(v float64) Money { return M(v, "HKD") }

// aBuy builds an unsaved buy trade for tests.
func aBuy(day, security string, segment MarketSegment, price float64, quantity int64, commission float64) Transaction {
	return NewTransaction(MustParseDate(day), Buy, security, "", segment, price, quantity, commission)
}

// aSell builds an unsaved sell trade for tests.
func aSell(day, security string, segment MarketSegment, price float64, quantity int64, commission float64) Transaction {
	return NewTransaction(MustParseDate(day), Sell, security, "", segment, price, quantity, commission)
}
