// Package animate provides linear tweens for numeric readouts and bar
// widths. A tween's final value is always exactly its target, however the
// frames fall.
package animate

import (
	"math"
	"time"
)

// FrameInterval is the default tick between animation frames.
const FrameInterval = 16 * time.Millisecond

// Interpolate returns the linear interpolation between start and end at
// fraction, clamped to [0, 1]. Interpolate(s, e, 1) == e exactly.
func Interpolate(start, end, fraction float64) float64 {
	if fraction <= 0 || math.IsNaN(fraction) {
		return start
	}
	if fraction >= 1 {
		return end
	}
	return start + (end-start)*fraction
}

// Round rounds half away from zero. Values beyond the int range saturate
// and NaN is 0.
func Round(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(math.Round(v))
}

// Tween moves a value from From to To over Duration, starting Delay after
// Start.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Delay    time.Duration
	Duration time.Duration
}

// Fraction returns the elapsed fraction in [0, 1] at now.
func (t Tween) Fraction(now time.Time) float64 {
	elapsed := now.Sub(t.Start) - t.Delay
	if elapsed < 0 {
		return 0
	}
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	return float64(elapsed) / float64(t.Duration)
}

// Value returns the tweened value at now.
func (t Tween) Value(now time.Time) float64 {
	return Interpolate(t.From, t.To, t.Fraction(now))
}

// Done reports whether the tween has reached To.
func (t Tween) Done(now time.Time) bool {
	return t.Fraction(now) >= 1
}
