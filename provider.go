package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Quote is a single live price observation for an instrument.
type Quote struct {
	Security      string
	Segment       MarketSegment
	Price         Money
	Change        Money   // day change per share
	ChangePercent float64 // day change in percent
	AsOf          time.Time
}

// QuoteProvider fetches the current price of an instrument. Providers are
// read-only collaborators of the valuation view: a failure means "no live
// price" and can never affect ledger state.
type QuoteProvider interface {
	Quote(security string, segment MarketSegment) (Quote, error)
}

// ProviderChain tries each provider in order and returns the first quote.
// Public quote endpoints are unreliable one by one; chained, they rarely all
// fail at once. The joined error lists every attempt.
type ProviderChain []QuoteProvider

// Quote implements the QuoteProvider interface.
func (c ProviderChain) Quote(security string, segment MarketSegment) (Quote, error) {
	var errs error
	for _, p := range c {
		q, err := p.Quote(security, segment)
		if err == nil {
			return q, nil
		}
		errs = errors.Join(errs, err)
	}
	if errs == nil {
		errs = fmt.Errorf("no provider configured")
	}
	return Quote{}, fmt.Errorf("no quote for %s/%s: %w", security, segment, errs)
}

// QuoteCache memoizes quotes from a source provider for a fixed TTL. The
// clock is injected so expiry is testable. The cache belongs to the quote
// side only and shares nothing with ledger state.
type QuoteCache struct {
	mu      sync.Mutex
	source  QuoteProvider
	ttl     time.Duration
	now     func() time.Time
	entries map[PositionKey]cachedQuote
}

type cachedQuote struct {
	quote   Quote
	fetched time.Time
}

// NewQuoteCache wraps a provider with a TTL cache using the wall clock.
func NewQuoteCache(source QuoteProvider, ttl time.Duration) *QuoteCache {
	return newQuoteCache(source, ttl, time.Now)
}

func newQuoteCache(source QuoteProvider, ttl time.Duration, now func() time.Time) *QuoteCache {
	return &QuoteCache{
		source:  source,
		ttl:     ttl,
		now:     now,
		entries: make(map[PositionKey]cachedQuote),
	}
}

// Quote implements the QuoteProvider interface. Errors are not cached: a
// failed fetch is retried on the next call.
func (c *QuoteCache) Quote(security string, segment MarketSegment) (Quote, error) {
	key := PositionKey{Security: security, Segment: segment}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.quote, nil
	}

	quote, err := c.source.Quote(security, segment)
	if err != nil {
		return Quote{}, err
	}

	c.mu.Lock()
	c.entries[key] = cachedQuote{quote: quote, fetched: c.now()}
	c.mu.Unlock()
	return quote, nil
}

// DefaultProvider returns the quote chain used by the CLI: the eastmoney fund
// valuation for open-ended funds, then the Yahoo quote endpoint, then the
// Yahoo chart endpoint, memoized for five minutes.
func DefaultProvider() QuoteProvider {
	return NewQuoteCache(ProviderChain{newFundNAV(), newYahooQuote(), newYahooChart()}, 5*time.Minute)
}
