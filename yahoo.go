package tracker

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Yahoo Finance quote scrapers. Two independent endpoints expose the same
// last price; the chain tries the richer quote API first and falls back to
// the chart API when it is throttled or withdrawn.

// yahooSymbol maps a security code and segment to Yahoo's symbol convention.
func yahooSymbol(code string, segment MarketSegment) string {
	switch segment {
	case AShare, Fund:
		// Shanghai listings start with 5 or 6, the rest trade in Shenzhen.
		if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "5") {
			return code + ".SS"
		}
		return code + ".SZ"
	case HKStock:
		// Yahoo wants 4-digit HK codes.
		for len(code) < 4 {
			code = "0" + code
		}
		return code + ".HK"
	default:
		return code
	}
}

type yahooQuote struct {
	client *http.Client
}

func newYahooQuote() *yahooQuote {
	return &yahooQuote{client: new(http.Client)}
}

/*
	{
	  "quoteResponse": {
	    "result": [
	      {
	        "symbol": "0700.HK",
	        "regularMarketPrice": 316.2,
	        "regularMarketChange": -1.4,
	        "regularMarketChangePercent": -0.4407,
	        "regularMarketTime": 1724913000
	      }
	    ],
	    "error": null
	  }
	}
*/
func (y *yahooQuote) Quote(security string, segment MarketSegment) (Quote, error) {
	symbol := yahooSymbol(security, segment)
	addr := "https://query1.finance.yahoo.com/v7/finance/quote?symbols=" + symbol

	var jobj any
	if err := jwget(y.client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error retrieving quote for %q: %w", symbol, err)
	}

	price, err := jsonFloat(jobj, "$.quoteResponse.result[0].regularMarketPrice")
	if err != nil {
		return Quote{}, fmt.Errorf("error parsing quote for %q: %w", symbol, err)
	}
	// change and percent are best-effort, a missing value is not a failure.
	change, _ := jsonFloat(jobj, "$.quoteResponse.result[0].regularMarketChange")
	percent, _ := jsonFloat(jobj, "$.quoteResponse.result[0].regularMarketChangePercent")
	asOf := time.Now()
	if epoch, err := jsonFloat(jobj, "$.quoteResponse.result[0].regularMarketTime"); err == nil {
		asOf = time.Unix(int64(epoch), 0)
	}

	cur := segment.Currency()
	return Quote{
		Security:      security,
		Segment:       segment,
		Price:         M(price, cur),
		Change:        M(change, cur),
		ChangePercent: percent,
		AsOf:          asOf,
	}, nil
}

type yahooChart struct {
	client *http.Client
}

func newYahooChart() *yahooChart {
	return &yahooChart{client: new(http.Client)}
}

/*
	{
	  "chart": {
	    "result": [
	      {
	        "meta": {
	          "regularMarketPrice": 316.2,
	          "chartPreviousClose": 317.6,
	          "regularMarketTime": 1724913000
	        }
	      }
	    ],
	    "error": null
	  }
	}
*/
func (y *yahooChart) Quote(security string, segment MarketSegment) (Quote, error) {
	symbol := yahooSymbol(security, segment)
	addr := "https://query1.finance.yahoo.com/v8/finance/chart/" + symbol + "?interval=1d&range=1d"

	var jobj any
	if err := jwget(y.client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error retrieving chart for %q: %w", symbol, err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, fmt.Errorf("error parsing chart for %q: %w", symbol, err)
	}

	var change, percent float64
	if previous, err := jsonFloat(jobj, "$.chart.result[0].meta.chartPreviousClose"); err == nil && previous != 0 {
		change = price - previous
		percent = change / previous * 100
	}
	asOf := time.Now()
	if epoch, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketTime"); err == nil {
		asOf = time.Unix(int64(epoch), 0)
	}

	cur := segment.Currency()
	return Quote{
		Security:      security,
		Segment:       segment,
		Price:         M(price, cur),
		Change:        M(change, cur),
		ChangePercent: percent,
		AsOf:          asOf,
	}, nil
}

// jsonFloat extracts a float value from a decoded JSON document.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", path, err)
	}
	// jsonpath sometimes returns a list of one answer, keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q: not a float: %v", path, jval)
	}
	return val, nil
}
