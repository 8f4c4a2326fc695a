package tracker

import (
	"bytes"
	"strings"
	"testing"
)

func TestTransactionsJSONL(t *testing.T) {
	txs := []Transaction{
		aBuy("2025-03-03", "600519", AShare, 1700, 100, 5),
		aSell("2025-03-10", "0700", HKStock, 320.5, 200, 10),
	}
	txs[0].ID, txs[1].ID = 1, 2

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, txs); err != nil {
		t.Fatalf("EncodeTransactions failed: %v", err)
	}

	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Errorf("encoded %d lines, want 2:\n%s", lines, buf.String())
	}

	back, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions failed: %v", err)
	}
	if len(back) != len(txs) {
		t.Fatalf("decoded %d trades, want %d", len(back), len(txs))
	}
	for i := range txs {
		if !back[i].Equal(txs[i]) {
			t.Errorf("trade %d = %+v, want %+v", i, back[i], txs[i])
		}
	}
}

func TestDecodeTransactionsSkipsEmptyLines(t *testing.T) {
	input := `{"id":1,"date":"2025-03-03","kind":"buy","security":"600519","segment":"a-share","price":10,"quantity":100,"commission":0,"status":"completed"}

{"id":2,"date":"2025-03-04","kind":"sell","security":"600519","segment":"a-share","price":12,"quantity":50,"commission":0,"status":"completed"}
`
	txs, err := DecodeTransactions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTransactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Errorf("decoded %d trades, want 2", len(txs))
	}
}

func TestDecodeTransactionsRejectsGarbage(t *testing.T) {
	if _, err := DecodeTransactions(strings.NewReader("not json\n")); err == nil {
		t.Error("garbage line should fail to decode")
	}
}

func TestPositionsJSONL(t *testing.T) {
	positions := []Position{
		{Security: "600519", Name: "Kweichow Moutai", Segment: AShare, Quantity: Q(150), AvgCost: CNY(12)},
		{Security: "AAPL", Segment: USStock, Quantity: Q(50), AvgCost: USD(180)},
	}

	var buf bytes.Buffer
	if err := EncodePositions(&buf, positions); err != nil {
		t.Fatalf("EncodePositions failed: %v", err)
	}

	back, err := DecodePositions(&buf)
	if err != nil {
		t.Fatalf("DecodePositions failed: %v", err)
	}
	if len(back) != len(positions) {
		t.Fatalf("decoded %d positions, want %d", len(back), len(positions))
	}
	for i, want := range positions {
		got := back[i]
		if got.Key() != want.Key() || !got.Quantity.Equal(want.Quantity) || !got.AvgCost.Equal(want.AvgCost) || got.Name != want.Name {
			t.Errorf("position %d = %+v, want %+v", i, got, want)
		}
	}
}
