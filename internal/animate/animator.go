package animate

import (
	"sort"
	"strconv"
	"time"
)

// Target receives animated values. Element ids are opaque strings.
type Target interface {
	SetText(id, text string)
	SetWidth(id string, percent float64)
}

type kind int

const (
	kindNumber kind = iota
	kindWidth
)

type entry struct {
	tween Tween
	kind  kind
}

// Animator runs many tweens off one frame clock and writes their values to
// a Target. It is not safe for concurrent use; drive it from the event loop.
type Animator struct {
	target  Target
	tweens  map[string]entry
	shown   map[string]float64
	formats map[string]func(int) string
}

// NewAnimator returns an animator writing to target.
func NewAnimator(target Target) *Animator {
	return &Animator{
		target:  target,
		tweens:  make(map[string]entry),
		shown:   make(map[string]float64),
		formats: make(map[string]func(int) string),
	}
}

// SetFormat sets how a numeric element is rendered. Default is strconv.Itoa.
func (a *Animator) SetFormat(id string, format func(int) string) {
	a.formats[id] = format
}

// Number animates a rounded numeric readout from -> to.
func (a *Animator) Number(id string, from, to float64, now time.Time, delay, duration time.Duration) {
	a.tweens[id] = entry{
		tween: Tween{From: from, To: to, Start: now, Delay: delay, Duration: duration},
		kind:  kindNumber,
	}
}

// NumberFromShown animates id from whatever it currently displays to to.
func (a *Animator) NumberFromShown(id string, to float64, now time.Time, duration time.Duration) {
	a.Number(id, a.shown[id], to, now, 0, duration)
}

// Width animates a percentage width.
func (a *Animator) Width(id string, from, to float64, now time.Time, delay, duration time.Duration) {
	a.tweens[id] = entry{
		tween: Tween{From: from, To: to, Start: now, Delay: delay, Duration: duration},
		kind:  kindWidth,
	}
}

// Shown returns the last value written for id.
func (a *Animator) Shown(id string) float64 {
	return a.shown[id]
}

// Active reports whether any tween is still running.
func (a *Animator) Active() bool {
	return len(a.tweens) > 0
}

// Tick writes every tween's value at now, retires finished tweens, and
// reports whether any remain.
func (a *Animator) Tick(now time.Time) bool {
	ids := make([]string, 0, len(a.tweens))
	for id := range a.tweens {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := a.tweens[id]
		if now.Before(e.tween.Start.Add(e.tween.Delay)) {
			continue
		}
		v := e.tween.Value(now)
		switch e.kind {
		case kindNumber:
			n := Round(v)
			a.shown[id] = float64(n)
			a.target.SetText(id, a.format(id, n))
		case kindWidth:
			a.shown[id] = v
			a.target.SetWidth(id, v)
		}
		if e.tween.Done(now) {
			delete(a.tweens, id)
		}
	}
	return a.Active()
}

func (a *Animator) format(id string, n int) string {
	if f, ok := a.formats[id]; ok {
		return f(n)
	}
	return strconv.Itoa(n)
}
