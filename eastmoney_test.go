package tracker

import "testing"

func TestStripJSONP(t *testing.T) {
	payload := []byte(`jsonpgz({"fundcode":"110022","dwjz":"3.0340"});`)
	got, err := stripJSONP(payload)
	if err != nil {
		t.Fatalf("stripJSONP failed: %v", err)
	}
	if want := `{"fundcode":"110022","dwjz":"3.0340"}`; string(got) != want {
		t.Errorf("stripJSONP = %s, want %s", got, want)
	}

	if _, err := stripJSONP([]byte(`not jsonp at all`)); err == nil {
		t.Error("payload without a callback should fail")
	}
}

func TestFundNAVRejectsOtherSegments(t *testing.T) {
	p := newFundNAV()
	if _, err := p.Quote("600519", AShare); err == nil {
		t.Error("a-share quote request should fail: eastmoney serves funds only")
	}
}
