package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msgrisk/cmd/msgrisk/analyzer"
	"msgrisk/cmd/msgrisk/ui"
	"msgrisk/internal/controller"
	"msgrisk/internal/logging"
	"msgrisk/internal/scoring"
	"msgrisk/internal/store"
	"msgrisk/internal/usage"
)

// runInteractive starts the terminal analyzer.
func runInteractive(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := analyzer.New(analyzer.Options{
		Scorer:  newScorer(),
		Tracker: newTracker(kv),
		Styles:  ui.NewStyles(ui.DetectTheme(cfg.UI.DarkMode)),
		Logger:  logs.For(logging.CategoryUI),
		Timings: controller.Timings{
			Score:   cfg.UI.GetScoreDuration(),
			Gauge:   600 * time.Millisecond,
			Bars:    600 * time.Millisecond,
			Counter: cfg.UI.GetCounterDuration(),
		},
		FrameInterval:   cfg.UI.GetFrameInterval(),
		NotificationTTL: cfg.UI.GetNotificationTTL(),
		Context:         ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	counterLog := logs.For(logging.CategoryCounter)

	if cfg.State.Watch && cfg.State.Backend != store.BackendMemory {
		w, err := usage.Watch(cfg.State.Path, 0, counterLog, func() {
			p.Send(analyzer.CounterChangedMsg{})
		})
		if err != nil {
			counterLog.Warn("counter watch disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	rollover, err := usage.NewRolloverSchedule(time.Local, func() {
		p.Send(analyzer.RolloverMsg{})
	})
	if err != nil {
		counterLog.Warn("midnight rollover disabled", zap.Error(err))
	} else {
		rollover.Start()
		defer rollover.Stop()
		counterLog.Debug("rollover scheduled", zap.Time("next", usage.NextRollover(time.Now())))
	}

	logger.Info("analyzer started", zap.String("service", cfg.Service.URL))
	_, err = p.Run()
	return err
}

func openStore() (store.KV, error) {
	kv, err := store.Open(cfg.State.Backend, cfg.State.Path)
	if err != nil {
		return nil, err
	}
	logs.For(logging.CategoryStore).Debug("state opened",
		zap.String("backend", cfg.State.Backend),
		zap.String("path", cfg.State.Path),
	)
	return kv, nil
}

func newTracker(kv store.KV) *usage.Tracker {
	return usage.NewTracker(kv, usage.WithLogger(logs.For(logging.CategoryCounter)))
}

func newScorer() *scoring.Client {
	return scoring.NewClient(
		cfg.Service.URL,
		cfg.GetServiceTimeout(),
		cfg.Service.MaxResponseBytes,
		logs.For(logging.CategoryAPI),
	)
}
