package render

import (
	"math"
	"testing"
	"time"

	"msgrisk/internal/scoring"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() scoring.AnalysisResult {
	return scoring.AnalysisResult{
		Timestamp:      "2024-01-02 10:11:12",
		Score:          7,
		MaxScore:       10,
		RiskLevel:      "Medium Risk",
		RiskClass:      "medium",
		Recommendation: "Exercise caution and verify the source.",
		CategoryScores: map[string]int{"urgent": 2, "links": 8},
		Reasons:        []string{"b reason", "a reason", "b reason"},
	}
}

func TestRender_IsPure(t *testing.T) {
	in := sampleResult()
	before := sampleResult()

	first := Render(in)
	second := Render(in)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Render not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, in); diff != "" {
		t.Fatalf("Render mutated its input (-before +after):\n%s", diff)
	}
}

func TestRender_Fields(t *testing.T) {
	r := Render(sampleResult())

	assert.Equal(t, "2024-01-02 10:11:12", r.Timestamp)
	assert.Equal(t, "Medium Risk", r.RiskLevel)
	assert.Equal(t, TierMedium, r.Tier)
	assert.Equal(t, AccentMedium, r.Accent)
	assert.Equal(t, "Security Score: 7 / 10", r.Description)
	assert.Equal(t, 7, r.Gauge.Readout)
	assert.InDelta(t, 0.7, r.Gauge.Fill, 1e-9)
}

func TestRender_TimestampVerbatim(t *testing.T) {
	for _, ts := range []string{"", "not a date", "2024-01-02T10:11:12Z", "Tue Jan 02 2024"} {
		in := sampleResult()
		in.Timestamp = ts
		assert.Equal(t, ts, Render(in).Timestamp)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		class  string
		tier   Tier
		accent string
	}{
		{"high", TierHigh, AccentHigh},
		{"medium", TierMedium, AccentMedium},
		{"low", TierLow, AccentLow},
		{"", TierUnknown, AccentNeutral},
		{"critical", TierUnknown, AccentNeutral},
		{"HIGH", TierUnknown, AccentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			tier := TierFor(tt.class)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.accent, tier.Accent())
		})
	}
}

func TestFill(t *testing.T) {
	assert.InDelta(t, 0.7, Fill(7, 10), 1e-9)
	assert.Equal(t, 0.0, Fill(0, 20))
	assert.Equal(t, 1.0, Fill(20, 20))
	assert.Equal(t, 1.0, Fill(25, 20), "clamped above")
	assert.Equal(t, 0.0, Fill(-3, 20), "clamped below")
	assert.Equal(t, 0.0, Fill(5, 0), "zero max")
	assert.Equal(t, 0.0, Fill(5, -1))
}

func TestBarWidth(t *testing.T) {
	tests := map[int]float64{-1: 0, 0: 0, 1: 20, 2: 40, 3: 60, 4: 80, 5: 100, 8: 100, 1000: 100}
	for count, want := range tests {
		assert.InDelta(t, want, BarWidth(count), 1e-9, "count=%d", count)
	}
}

func TestBars_FixedOrderAndDefaults(t *testing.T) {
	bars := Bars(map[string]int{"threats": 5, "links": 8, "unknown": 3})
	require.Len(t, bars, 4)

	want := []Bar{
		{Category: "urgent", Count: 0, Width: 0, Label: "0 detected", Delay: BarDelay},
		{Category: "links", Count: 8, Width: 100, Label: "8 detected", Delay: BarDelay},
		{Category: "financial", Count: 0, Width: 0, Label: "0 detected", Delay: BarDelay},
		{Category: "threats", Count: 5, Width: 100, Label: "5 detected", Delay: BarDelay},
	}
	if diff := cmp.Diff(want, bars); diff != "" {
		t.Fatalf("bars mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, Bars(nil), 4)
}

func TestReasons_Empty(t *testing.T) {
	for _, in := range [][]string{nil, {}} {
		got := Reasons(in)
		require.Len(t, got, 1)
		assert.True(t, got[0].Affirmative)
		assert.Equal(t, NoThreatsText, got[0].Text)
	}
}

func TestReasons_OrderPreservedNoDedup(t *testing.T) {
	in := []string{"z", "a", "z", "m"}
	got := Reasons(in)
	require.Len(t, got, len(in))
	for i, r := range got {
		assert.Equal(t, in[i], r.Text)
		assert.False(t, r.Affirmative)
		assert.Equal(t, time.Duration(i)*ReasonStagger, r.Delay)
	}
}

func TestNewGauge_OutOfRangeScore(t *testing.T) {
	g := NewGauge(1e300, 10)
	assert.Equal(t, math.MaxInt, g.Readout)
	assert.Equal(t, 1.0, g.Fill)

	g = NewGauge(-1e300, 10)
	assert.Equal(t, math.MinInt, g.Readout)
	assert.Equal(t, 0.0, g.Fill)

	g = NewGauge(math.NaN(), 10)
	assert.Equal(t, 0, g.Readout)
	assert.Equal(t, 0.0, g.Fill)
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Render(sampleResult()))
	assert.Contains(t, md, "# Medium Risk")
	assert.Contains(t, md, "Security Score: 7 / 10")
	assert.Contains(t, md, "| Links | 8 | ██████████ |")
	assert.Contains(t, md, "| Urgency | 2 | ████░░░░░░ |")
	assert.Contains(t, md, "- ⚠️ b reason\n- ⚠️ a reason\n- ⚠️ b reason\n")
	assert.Contains(t, md, "_Analyzed 2024-01-02 10:11:12_")

	clean := sampleResult()
	clean.Reasons = nil
	clean.RiskLevel = ""
	md = Markdown(Render(clean))
	assert.Contains(t, md, "# Unclassified")
	assert.Contains(t, md, "✓ "+NoThreatsText)
}
