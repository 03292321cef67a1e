// Package render maps a scoring result to display values. Render is pure:
// it never mutates its input and equal inputs give equal reports.
package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"msgrisk/internal/animate"
	"msgrisk/internal/scoring"
)

// Tier is the visual risk tier.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
	TierUnknown Tier = ""
)

// Accent colors per tier.
const (
	AccentHigh    = "#ff3366"
	AccentMedium  = "#ffb800"
	AccentLow     = "#00ff88"
	AccentNeutral = "#00f0ff"
)

// Presentation timings.
const (
	ScoreDuration = time.Second
	GaugeDelay    = 100 * time.Millisecond
	BarDelay      = 300 * time.Millisecond
	ReasonStagger = 100 * time.Millisecond

	// BarSaturation is the count at which a category bar is full.
	BarSaturation = 5
)

// NoThreatsText is shown when the result carries no reasons.
const NoThreatsText = "No significant threats detected"

// Report is everything the view shows for one result.
type Report struct {
	Timestamp      string
	RiskLevel      string
	Tier           Tier
	Accent         string
	Description    string
	Recommendation string
	Gauge          Gauge
	Bars           []Bar
	Reasons        []Reason
}

// Gauge is the circular score indicator.
type Gauge struct {
	Score    float64
	MaxScore float64
	// Fill is Score/MaxScore clamped to [0, 1].
	Fill float64
	// Readout is the final number displayed.
	Readout int
}

// Bar is one category bar.
type Bar struct {
	Category string
	Count    int
	// Width is a percentage in [0, 100].
	Width float64
	Label string
	Delay time.Duration
}

// Reason is one entry of the reason list.
type Reason struct {
	Text        string
	Icon        string
	Delay       time.Duration
	Affirmative bool
}

// TierFor maps a risk class to a tier; anything unrecognised is TierUnknown.
func TierFor(riskClass string) Tier {
	switch riskClass {
	case scoring.RiskHigh:
		return TierHigh
	case scoring.RiskMedium:
		return TierMedium
	case scoring.RiskLow:
		return TierLow
	default:
		return TierUnknown
	}
}

// Accent returns the tier's color, neutral for unknown tiers.
func (t Tier) Accent() string {
	switch t {
	case TierHigh:
		return AccentHigh
	case TierMedium:
		return AccentMedium
	case TierLow:
		return AccentLow
	default:
		return AccentNeutral
	}
}

// Render builds the report for r.
func Render(r scoring.AnalysisResult) Report {
	tier := TierFor(r.RiskClass)
	return Report{
		Timestamp:      r.Timestamp,
		RiskLevel:      r.RiskLevel,
		Tier:           tier,
		Accent:         tier.Accent(),
		Description:    fmt.Sprintf("Security Score: %s / %s", formatNumber(r.Score), formatNumber(r.MaxScore)),
		Recommendation: r.Recommendation,
		Gauge:          NewGauge(r.Score, r.MaxScore),
		Bars:           Bars(r.CategoryScores),
		Reasons:        Reasons(r.Reasons),
	}
}

// NewGauge computes the fill fraction and final readout.
func NewGauge(score, maxScore float64) Gauge {
	return Gauge{
		Score:    score,
		MaxScore: maxScore,
		Fill:     Fill(score, maxScore),
		Readout:  animate.Round(score),
	}
}

// Fill returns score/maxScore clamped to [0, 1]; 0 when maxScore <= 0.
func Fill(score, maxScore float64) float64 {
	if maxScore <= 0 || math.IsNaN(score) || math.IsNaN(maxScore) {
		return 0
	}
	f := score / maxScore
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// BarWidth returns min(count/BarSaturation, 1) * 100. Negative counts are 0.
func BarWidth(count int) float64 {
	if count <= 0 {
		return 0
	}
	if count >= BarSaturation {
		return 100
	}
	return float64(count) / BarSaturation * 100
}

// Bars returns one bar per category in scoring.Categories order.
func Bars(scores map[string]int) []Bar {
	bars := make([]Bar, 0, len(scoring.Categories))
	for _, cat := range scoring.Categories {
		count := scores[cat]
		bars = append(bars, Bar{
			Category: cat,
			Count:    count,
			Width:    BarWidth(count),
			Label:    fmt.Sprintf("%d detected", count),
			Delay:    BarDelay,
		})
	}
	return bars
}

// Reasons returns the reason entries in input order. An empty list yields a
// single affirmative entry.
func Reasons(reasons []string) []Reason {
	if len(reasons) == 0 {
		return []Reason{{Text: NoThreatsText, Icon: "✓", Affirmative: true}}
	}
	out := make([]Reason, len(reasons))
	for i, text := range reasons {
		out[i] = Reason{
			Text:  text,
			Icon:  "⚠️",
			Delay: time.Duration(i) * ReasonStagger,
		}
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
