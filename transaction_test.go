package tracker

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateQuickFixes(t *testing.T) {
	tx := Transaction{
		Kind:      Buy,
		Security:  "600519",
		Segment:   AShare,
		UnitPrice: M(10, ""), // no currency: resolved from the segment
		Quantity:  Q(100),
	}

	fixed, err := tx.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if fixed.Date.IsZero() {
		t.Error("zero date should default to today")
	}
	if fixed.Status != StatusCompleted {
		t.Errorf("empty status should default to %q, got %q", StatusCompleted, fixed.Status)
	}
	if fixed.UnitPrice.Currency() != "CNY" {
		t.Errorf("price currency should resolve to CNY, got %q", fixed.UnitPrice.Currency())
	}
	if fixed.Commission.Currency() != "CNY" {
		t.Errorf("commission currency should resolve to CNY, got %q", fixed.Commission.Currency())
	}
}

func TestTransactionAmounts(t *testing.T) {
	tx := aBuy("2025-03-03", "AAPL", USStock, 180, 50, 2)

	if want := USD(9000); !tx.Amount().Equal(want) {
		t.Errorf("Amount = %s, want %s", tx.Amount().Decimal(), want.Decimal())
	}
	if want := USD(9002); !tx.GrossCost().Equal(want) {
		t.Errorf("GrossCost = %s, want %s", tx.GrossCost().Decimal(), want.Decimal())
	}
	if want := USD(8998); !tx.NetProceeds().Equal(want) {
		t.Errorf("NetProceeds = %s, want %s", tx.NetProceeds().Decimal(), want.Decimal())
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	tx := aBuy("2025-03-03", "600519", AShare, 1700.5, 100, 5)
	tx.ID = 7
	tx.Name = "Kweichow Moutai"
	tx.Status = StatusCompleted

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// the ledger file is canonical: keys come in a fixed order
	line := string(data)
	order := []string{`"id"`, `"date"`, `"kind"`, `"security"`, `"name"`, `"segment"`, `"price"`, `"quantity"`, `"commission"`, `"amount"`, `"status"`}
	last := -1
	for _, key := range order {
		i := strings.Index(line, key)
		if i < 0 {
			t.Fatalf("key %s missing in %s", key, line)
		}
		if i < last {
			t.Errorf("key %s out of order in %s", key, line)
		}
		last = i
	}

	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(tx) {
		t.Errorf("round trip = %+v, want %+v", back, tx)
	}
}

func TestTransactionAmountRecomputedOnRead(t *testing.T) {
	// a hand-edited amount must not survive a read: it is always derived
	line := `{"id":1,"date":"2025-03-03","kind":"buy","security":"600519","segment":"a-share","price":10,"quantity":100,"commission":0,"amount":999999,"status":"completed"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(line), &tx); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if want := CNY(1000); !tx.Amount().Equal(want) {
		t.Errorf("Amount = %s, want %s", tx.Amount().Decimal(), want.Decimal())
	}
}

func TestTransactionEqualIgnoresTimestamps(t *testing.T) {
	a := aBuy("2025-03-03", "600519", AShare, 10, 100, 0)
	b := a
	b.CreatedAt = b.CreatedAt.AddDate(0, 0, 1)
	b.UpdatedAt = b.UpdatedAt.AddDate(0, 0, 2)

	if !a.Equal(b) {
		t.Error("Equal should ignore CreatedAt and UpdatedAt")
	}

	b.Security = "000001"
	if a.Equal(b) {
		t.Error("Equal should detect a different security")
	}
}
