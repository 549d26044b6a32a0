package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderExposesAllSeries(t *testing.T) {
	IncUploadsReceived()
	IncEntriesPersisted()
	ObservePipelineDurationMs(1234)

	out := Render()
	for _, want := range []string{
		"uploads_received_total",
		"extraction_failed_total",
		"analysis_fallback_total",
		"entries_persisted_total",
		"pipeline_duration_ms_bucket",
		"pipeline_duration_ms_sum",
		"pipeline_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %s", want)
		}
	}
	if !strings.Contains(out, `le="+Inf"`) {
		t.Error("histogram missing +Inf bucket")
	}
}

func TestHistogramBucketsAreCumulativeOnce(t *testing.T) {
	h := newHistogram([]float64{10, 20})
	h.Observe(5)
	h.Observe(15)
	h.Observe(100)

	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("per-bucket counts = %v, want [1 1]", snap.counts)
	}
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "h", "help", snap)
	out := buf.String()
	for _, want := range []string{
		`h_bucket{le="10"} 1`,
		`h_bucket{le="20"} 2`,
		`h_bucket{le="+Inf"} 3`,
		"h_count 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered histogram missing %q:\n%s", want, out)
		}
	}
}

func TestObserveNegativeDurationClamped(t *testing.T) {
	before := pipelineDuration.Snapshot()
	ObservePipelineDurationMs(-5)
	after := pipelineDuration.Snapshot()

	if after.count != before.count+1 {
		t.Fatalf("count = %d, want %d", after.count, before.count+1)
	}
	if after.sum < before.sum {
		t.Fatal("negative observation should clamp to zero")
	}
}
