package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Eastmoney fund valuation scraper. Open-ended funds have no exchange quote:
// the endpoint serves the last published net asset value per unit plus an
// intraday estimate. The NAV moves once a day, so the per-day disk HTTP
// cache is the right freshness for it.

type fundNAV struct {
	client *http.Client
}

func newFundNAV() *fundNAV {
	return &fundNAV{client: dailyClient()}
}

// The endpoint answers JSONP, a JSON payload wrapped in a fixed callback:
//
//	jsonpgz({"fundcode":"110022","name":"...","dwjz":"3.0340","gsz":"3.0551","gszzl":"0.70","gztime":"2025-08-29 15:00"});
func (f *fundNAV) Quote(security string, segment MarketSegment) (Quote, error) {
	if segment != Fund {
		return Quote{}, fmt.Errorf("eastmoney serves funds only, not %s", segment)
	}

	addr := "https://fundgz.1234567.com.cn/js/" + security + ".js"
	resp, err := f.client.Get(addr)
	if err != nil {
		return Quote{}, fmt.Errorf("error retrieving fund %q: %w", security, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return Quote{}, fmt.Errorf("cannot http GET fund %q: %v", security, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	payload, err := stripJSONP(body)
	if err != nil {
		return Quote{}, fmt.Errorf("error parsing fund %q: %w", security, err)
	}

	var temp struct {
		Code      string `json:"fundcode"`
		Name      string `json:"name"`
		NAV       string `json:"dwjz"`   // last published NAV per unit
		Estimate  string `json:"gsz"`    // intraday estimated NAV
		EstimateP string `json:"gszzl"`  // estimated day change in percent
		Time      string `json:"gztime"` // estimate timestamp
	}
	if err := json.Unmarshal(payload, &temp); err != nil {
		return Quote{}, fmt.Errorf("error parsing fund %q: %w", security, err)
	}

	// Prefer the intraday estimate, fall back to the published NAV.
	raw := temp.Estimate
	if raw == "" {
		raw = temp.NAV
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price == 0 {
		return Quote{}, fmt.Errorf("fund %q has no usable value %q", security, raw)
	}
	percent, _ := strconv.ParseFloat(temp.EstimateP, 64)

	asOf := time.Now()
	if t, err := time.ParseInLocation("2006-01-02 15:04", temp.Time, time.Local); err == nil {
		asOf = t
	}

	cur := segment.Currency()
	return Quote{
		Security:      security,
		Segment:       segment,
		Price:         M(price, cur),
		Change:        M(price*percent/100, cur),
		ChangePercent: percent,
		AsOf:          asOf,
	}, nil
}

// stripJSONP unwraps a payload of the form callback({...});
func stripJSONP(body []byte) ([]byte, error) {
	open := bytes.IndexByte(body, '(')
	end := bytes.LastIndexByte(body, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("not a jsonp payload: %q", body)
	}
	return body[open+1 : end], nil
}
