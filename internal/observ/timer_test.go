package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("scan")
	time.Sleep(time.Millisecond)
	tm.End(idx, "3 files")

	idx2 := tm.Begin("analyze")
	tm.End(idx2, "")

	phases := tm.Phases()
	if len(phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(phases))
	}
	if phases[0].Dur <= 0 {
		t.Errorf("scan duration should be positive")
	}
	if tm.Total() < phases[0].Dur {
		t.Errorf("total should cover scan duration")
	}

	summary := tm.Summary()
	if !strings.Contains(summary, "scan") || !strings.Contains(summary, "3 files") {
		t.Errorf("summary missing phase data:\n%s", summary)
	}
	if !strings.Contains(summary, "total") {
		t.Errorf("summary missing total:\n%s", summary)
	}
}

func TestTimer_EndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(0, "no phases")
	tm.End(-1, "negative")
	if len(tm.Phases()) != 0 {
		t.Errorf("out-of-range End must not create phases")
	}
}
