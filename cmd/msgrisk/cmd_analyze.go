package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msgrisk/internal/controller"
	"msgrisk/internal/logging"
	"msgrisk/internal/notify"
	"msgrisk/internal/render"
	"msgrisk/internal/store"
	"msgrisk/internal/usage"
)

var (
	analyzeJSON    bool
	analyzeNoCount bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [message]",
	Short: "Analyze one message and print the report",
	Long: `Sends a single message to the scoring service and prints the report.
With no arguments (or "-") the message is read from stdin.

Example:
  msgrisk analyze "Your account is locked, verify at http://bit.ly/x"
  pbpaste | msgrisk analyze --json`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	message, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	// --no-count scores against a throwaway counter.
	var kv store.KV = store.NewMemoryKV()
	if !analyzeNoCount {
		if opened, err := openStore(); err != nil {
			logs.For(logging.CategoryCounter).Warn("scan not counted", zap.Error(err))
		} else {
			kv = opened
		}
	}
	defer kv.Close()

	ctrl := controller.New(controller.Config{
		Scorer:   newScorer(),
		Counter:  newTracker(kv),
		View:     headlessView{},
		Notifier: writerNotifier{w: cmd.ErrOrStderr()},
		Logger:   logs.For(logging.CategoryUI),
	})
	ctrl.Start()
	ctrl.Input().SetText(message)

	if _, err := ctrl.Analyze(cmd.Context()); err != nil {
		// The notifier has already told the user.
		return &reportedError{err: err}
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ctrl.State().Result)
	}

	report, _ := ctrl.Report()
	md := render.Markdown(report)
	style := "notty"
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		style = "light"
		if cfg.UI.DarkMode {
			style = "dark"
		}
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Fprint(out, md)
		return nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		fmt.Fprint(out, md)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// readMessage joins args, or reads r when args are empty or "-".
func readMessage(r io.Reader, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

// headlessView is a Binding with no elements to update.
type headlessView struct{}

func (headlessView) SetText(string, string)           {}
func (headlessView) SetVisible(string, bool)          {}
func (headlessView) SetWidth(string, float64)         {}
func (headlessView) SetClass(string, string)          {}
func (headlessView) SetEnabled(string, bool)          {}
func (headlessView) SetItems(string, []render.Reason) {}
func (headlessView) Focus(string)                     {}

// writerNotifier prints each notification as one line.
type writerNotifier struct{ w io.Writer }

func (n writerNotifier) Notify(message string, severity notify.Severity) {
	fmt.Fprintf(n.w, "%s: %s\n", severity, message)
}

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Print the number of scans made today",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := openStore()
		if err != nil {
			return err
		}
		defer kv.Close()

		c := usage.NewTracker(kv, usage.WithLogger(logs.For(logging.CategoryCounter))).Load()
		fmt.Fprintf(cmd.OutOrStdout(), "%d scans on %s\n", c.Count, c.Date)
		return nil
	},
}
