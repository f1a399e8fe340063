package browser

import (
	"context"
	"errors"
	"testing"
)

func TestHeightStabilized(t *testing.T) {
	tests := []struct {
		prev, cur int
		want      bool
	}{
		{-1, 5000, false}, // first sample, nothing to compare
		{5000, 5000, true},
		{5000, 6200, false},
		{6200, 5000, false}, // shrinking still counts as unstable
		{0, 0, true},
	}
	for _, tt := range tests {
		if got := heightStabilized(tt.prev, tt.cur); got != tt.want {
			t.Errorf("heightStabilized(%d, %d) = %v, want %v", tt.prev, tt.cur, got, tt.want)
		}
	}
}

func TestRunBestEffort_FailuresDoNotAbort(t *testing.T) {
	var ran []string
	runBestEffort(context.Background(), []bestEffortStep{
		{"first", func() error { ran = append(ran, "first"); return errors.New("boom") }},
		{"second", func() error { ran = append(ran, "second"); return nil }},
		{"third", func() error { ran = append(ran, "third"); return errors.New("boom again") }},
	})

	if len(ran) != 3 {
		t.Errorf("ran = %v, want all three steps despite failures", ran)
	}
}

func TestRunBestEffort_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran []string
	runBestEffort(ctx, []bestEffortStep{
		{"first", func() error { ran = append(ran, "first"); cancel(); return nil }},
		{"second", func() error { ran = append(ran, "second"); return nil }},
	})

	if len(ran) != 1 || ran[0] != "first" {
		t.Errorf("ran = %v, want only the first step before cancellation", ran)
	}
}
