// Package analyzer is the interactive terminal front end: a bubbletea
// program that binds the analysis controller to a textarea, a spinner,
// progress bars and toast notifications.
package analyzer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"msgrisk/cmd/msgrisk/ui"
	"msgrisk/internal/animate"
	"msgrisk/internal/controller"
	"msgrisk/internal/notify"
	"msgrisk/internal/scoring"
	"msgrisk/internal/usage"
)

// CounterChangedMsg reports that the persisted counter was written by
// another instance.
type CounterChangedMsg struct{}

// RolloverMsg is sent at local midnight.
type RolloverMsg struct{}

type frameMsg time.Time

type analysisDoneMsg struct {
	outcome controller.Outcome
}

// Options configures a Model.
type Options struct {
	Scorer  scoring.Scorer
	Tracker *usage.Tracker
	Styles  ui.Styles
	Logger  *zap.Logger
	Timings controller.Timings

	FrameInterval   time.Duration
	NotificationTTL time.Duration

	// Context bounds in-flight requests; cancelled on quit.
	Context context.Context
	Now     func() time.Time
}

// Model is the bubbletea model for the analyzer screen.
type Model struct {
	ctrl    *controller.Controller
	surface *Surface
	toasts  *notify.Queue
	logger  *zap.Logger
	now     func() time.Time
	frame   time.Duration
	ctx     context.Context

	textarea textarea.Model
	spinner  spinner.Model
	bar      progress.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles

	width    int
	height   int
	ticking  bool
	quitting bool
}

// New builds the model and starts the controller.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = animate.FrameInterval
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	surface := NewSurface()
	toasts := notify.NewQueue(opts.NotificationTTL)
	toasts.SetClock(now)

	ctrl := controller.New(controller.Config{
		Scorer:   opts.Scorer,
		Counter:  opts.Tracker,
		View:     surface,
		Notifier: toasts,
		Logger:   logger,
		Timings:  opts.Timings,
		Now:      now,
	})

	ta := textarea.New()
	ta.Placeholder = "Paste a suspicious message here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.SetWidth(60)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	bar := progress.New(
		progress.WithSolidFill(string(ui.Neutral)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)

	m := Model{
		ctrl:     ctrl,
		surface:  surface,
		toasts:   toasts,
		logger:   logger,
		now:      now,
		frame:    frame,
		ctx:      ctx,
		textarea: ta,
		spinner:  sp,
		bar:      bar,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   opts.Styles,
	}

	ctrl.Start()
	m.sync()
	m.ticking = ctrl.Animating()
	return m
}

// Controller exposes the underlying controller.
func (m Model) Controller() *controller.Controller { return m.ctrl }

// Surface exposes the bound element state.
func (m Model) Surface() *Surface { return m.surface }

// Init starts the cursor blink and any startup animation.
func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tea.Batch(textarea.Blink, m.frameCmd())
	}
	return textarea.Blink
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(max(msg.Width-8, 20))
		m.help.Width = max(msg.Width, 0)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case analysisDoneMsg:
		if _, applied := m.ctrl.Complete(msg.outcome); !applied {
			return m, nil
		}
		m.sync()
		return m, m.ensureTick()

	case frameMsg:
		return m.handleFrame()

	case spinner.TickMsg:
		if !m.surface.Visible(controller.ElemLoading) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CounterChangedMsg, RolloverMsg:
		m.logger.Debug("reloading counter", zap.String("reason", reloadReason(msg)))
		m.ctrl.ReloadCounter()
		return m, m.ensureTick()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.ctrl.Clear()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if active := m.toasts.Active(m.now()); len(active) > 0 {
			m.toasts.Dismiss(active[0].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.ctrl.Input().SetText(m.textarea.Value())
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.Input().SetText(m.textarea.Value())
	p, err := m.ctrl.Submit()
	m.sync()
	if err != nil {
		m.logger.Debug("submit rejected", zap.Error(err))
		// Keep frames coming so the toast expires on screen.
		return m, m.ensureTick()
	}
	return m, tea.Batch(m.runAnalysis(p), m.spinner.Tick, m.ensureTick())
}

// runAnalysis performs the scoring call on a command goroutine.
func (m Model) runAnalysis(p controller.Pending) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return analysisDoneMsg{outcome: ctrl.Run(ctx, p)}
	}
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	now := m.now()
	m.ctrl.Tick(now)
	if m.ctrl.Animating() || len(m.toasts.Active(now)) > 0 {
		return m, m.frameCmd()
	}
	m.ticking = false
	return m, nil
}

func (m *Model) ensureTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.frameCmd()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// sync applies queued input and focus changes from the controller.
func (m *Model) sync() {
	input, focus := m.surface.takePending()
	if input != nil {
		m.textarea.SetValue(*input)
	}
	if focus == controller.ElemInput {
		m.textarea.Focus()
	}
}

func reloadReason(msg tea.Msg) string {
	if _, ok := msg.(RolloverMsg); ok {
		return "rollover"
	}
	return "external write"
}
