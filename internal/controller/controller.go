// Package controller owns the analysis lifecycle: it validates input, moves
// the UI between idle, loading and result states, calls the scoring service
// and keeps the daily counter in step with successful analyses.
//
// A Controller is not safe for concurrent use. Submit, Complete, Clear and
// Tick must run on one event goroutine; Run may run anywhere.
package controller

import (
	"context"
	"errors"
	"time"

	"msgrisk/internal/animate"
	"msgrisk/internal/notify"
	"msgrisk/internal/render"
	"msgrisk/internal/scoring"
	"msgrisk/internal/usage"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// User-facing notification texts.
const (
	MsgEmptyInput     = "Please enter a message to analyze"
	MsgAnalysisFailed = "An error occurred during analysis. Please try again."
)

var (
	// ErrEmptyMessage is returned by Submit for blank input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned by Submit while a request is in flight.
	ErrBusy = errors.New("analysis already in progress")
	// ErrNoResult is reported when the service answers without a body.
	ErrNoResult = errors.New("scoring service returned no result")
)

// Timings controls presentation durations.
type Timings struct {
	Score   time.Duration
	Gauge   time.Duration
	Bars    time.Duration
	Counter time.Duration
}

// DefaultTimings returns the standard durations.
func DefaultTimings() Timings {
	return Timings{
		Score:   render.ScoreDuration,
		Gauge:   600 * time.Millisecond,
		Bars:    600 * time.Millisecond,
		Counter: 500 * time.Millisecond,
	}
}

// Config wires a Controller.
type Config struct {
	Scorer   scoring.Scorer
	Counter  *usage.Tracker
	View     Binding
	Notifier notify.Notifier
	Logger   *zap.Logger
	Timings  Timings
	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller is the submission state machine.
type Controller struct {
	scorer   scoring.Scorer
	tracker  *usage.Tracker
	view     Binding
	notifier notify.Notifier
	logger   *zap.Logger
	timings  Timings
	now      func() time.Time

	input    Input
	animator *animate.Animator

	phase   Phase
	seq     uint64
	result  *scoring.AnalysisResult
	report  *render.Report
	lastMsg string
	counter usage.DailyCounter
}

// New creates a controller. Call Start before the first event.
func New(cfg Config) *Controller {
	c := &Controller{
		scorer:   cfg.Scorer,
		tracker:  cfg.Counter,
		view:     cfg.View,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		timings:  cfg.Timings,
		now:      cfg.Now,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.timings == (Timings{}) {
		c.timings = DefaultTimings()
	}
	c.animator = animate.NewAnimator(c.view)
	c.animator.SetFormat(ElemCounter, func(n int) string { return humanize.Comma(int64(n)) })
	return c
}

// Start loads the counter and puts the view in its idle layout.
func (c *Controller) Start() {
	c.phase = PhaseIdle
	c.view.SetVisible(ElemResults, false)
	c.view.SetVisible(ElemLoading, false)
	c.view.SetEnabled(ElemSubmit, true)
	c.view.Focus(ElemInput)
	c.ReloadCounter()
}

// Input returns the input surface.
func (c *Controller) Input() *Input { return &c.input }

// State returns the current UI state.
func (c *Controller) State() UIState {
	s := UIState{Phase: c.phase, Message: c.lastMsg}
	if c.phase == PhaseResult {
		s.Result = c.result
	}
	return s
}

// Report returns the last rendered report.
func (c *Controller) Report() (render.Report, bool) {
	if c.report == nil {
		return render.Report{}, false
	}
	return *c.report, true
}

// Counter returns the in-memory daily counter.
func (c *Controller) Counter() usage.DailyCounter { return c.counter }

// Seq returns the sequence number of the latest submission.
func (c *Controller) Seq() uint64 { return c.seq }

// Submit validates the input and, when valid, enters Loading. The returned
// Pending must be passed to Run and its Outcome to Complete.
func (c *Controller) Submit() (Pending, error) {
	if c.phase == PhaseLoading {
		return Pending{}, ErrBusy
	}
	message := c.input.Trimmed()
	if message == "" {
		c.notify(MsgEmptyInput, notify.SeverityWarning)
		return Pending{}, ErrEmptyMessage
	}

	c.seq++
	c.phase = PhaseLoading
	c.lastMsg = ""
	c.view.SetVisible(ElemResults, false)
	c.view.SetVisible(ElemLoading, true)
	c.view.SetEnabled(ElemSubmit, false)

	c.logger.Debug("analysis submitted", zap.Uint64("seq", c.seq), zap.Int("length", len(message)))
	return Pending{Seq: c.seq, Request: scoring.AnalysisRequest{Message: message}}, nil
}

// Run performs the scoring call for p. It reads no mutable controller
// state and may run off the event goroutine.
func (c *Controller) Run(ctx context.Context, p Pending) Outcome {
	res, err := c.scorer.Analyze(ctx, p.Request)
	if err == nil && res == nil {
		err = ErrNoResult
	}
	return Outcome{Seq: p.Seq, Result: res, Err: err}
}

// Complete applies o. It returns the terminal phase (PhaseResult or
// PhaseError) and true, or false when o is stale or already applied.
func (c *Controller) Complete(o Outcome) (Phase, bool) {
	if o.Seq != c.seq || c.phase != PhaseLoading {
		c.logger.Debug("discarding stale analysis outcome", zap.Uint64("seq", o.Seq), zap.Uint64("latest", c.seq))
		return c.phase, false
	}

	c.view.SetVisible(ElemLoading, false)
	c.view.SetEnabled(ElemSubmit, true)

	if o.Err == nil && o.Result == nil {
		o.Err = ErrNoResult
	}
	if o.Err != nil {
		c.logger.Error("analysis failed", zap.Uint64("seq", o.Seq), zap.Error(o.Err))
		c.phase = PhaseIdle
		c.lastMsg = MsgAnalysisFailed
		c.notify(MsgAnalysisFailed, notify.SeverityError)
		return PhaseError, true
	}

	c.phase = PhaseResult
	c.result = o.Result
	report := render.Render(*o.Result)
	c.report = &report
	c.apply(report)

	c.counter = c.tracker.Increment(c.counter)
	c.displayCounter()

	c.logger.Info("analysis complete",
		zap.Uint64("seq", o.Seq),
		zap.String("risk_class", o.Result.RiskClass),
		zap.Float64("score", o.Result.Score),
		zap.Int("scans_today", c.counter.Count),
	)
	return PhaseResult, true
}

// Analyze runs Submit, Run and Complete in sequence.
func (c *Controller) Analyze(ctx context.Context) (Phase, error) {
	p, err := c.Submit()
	if err != nil {
		return c.phase, err
	}
	o := c.Run(ctx, p)
	phase, _ := c.Complete(o)
	return phase, o.Err
}

// Clear empties the input, hides the results and refocuses the input. A
// shown result is dropped and the controller returns to Idle. An in-flight
// request is left to complete.
func (c *Controller) Clear() {
	if c.phase != PhaseLoading {
		c.phase = PhaseIdle
		c.result = nil
	}
	c.input.Clear()
	c.view.SetText(ElemInput, "")
	c.view.SetVisible(ElemResults, false)
	c.view.Focus(ElemInput)
}

// ReloadCounter re-reads the persisted counter (applying day rollover) and
// animates the display to it.
func (c *Controller) ReloadCounter() {
	c.counter = c.tracker.Load()
	c.displayCounter()
}

// Tick advances animations to now and reports whether any are running.
func (c *Controller) Tick(now time.Time) bool {
	return c.animator.Tick(now)
}

// Animating reports whether a Tick is needed.
func (c *Controller) Animating() bool {
	return c.animator.Active()
}

func (c *Controller) displayCounter() {
	c.animator.NumberFromShown(ElemCounter, float64(c.counter.Count), c.now(), c.timings.Counter)
}

func (c *Controller) apply(r render.Report) {
	now := c.now()

	c.view.SetVisible(ElemResults, true)
	c.view.SetText(ElemTimestamp, r.Timestamp)
	c.view.SetClass(ElemRiskCard, string(r.Tier))
	c.view.SetText(ElemRiskLevel, r.RiskLevel)
	c.view.SetText(ElemRiskDescription, r.Description)
	c.view.SetText(ElemRecommendation, r.Recommendation)

	c.view.SetText(ElemScoreValue, "0")
	c.animator.Number(ElemScoreValue, 0, float64(r.Gauge.Readout), now, 0, c.timings.Score)
	c.view.SetWidth(ElemScoreCircle, 0)
	c.animator.Width(ElemScoreCircle, 0, r.Gauge.Fill*100, now, render.GaugeDelay, c.timings.Gauge)

	for _, b := range r.Bars {
		c.view.SetText(CountID(b.Category), b.Label)
		id := BarID(b.Category)
		c.animator.Width(id, c.animator.Shown(id), b.Width, now, b.Delay, c.timings.Bars)
	}

	c.view.SetItems(ElemReasons, r.Reasons)
}

func (c *Controller) notify(msg string, sev notify.Severity) {
	if c.notifier != nil {
		c.notifier.Notify(msg, sev)
	}
}
