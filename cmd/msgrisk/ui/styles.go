// Package ui provides the visual styling for the msgrisk terminal analyzer.
// The palette follows the scanner's neon accents with light/dark support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"msgrisk/internal/render"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#0a0e1a")
	LightPrimary    = lipgloss.Color("#0077aa")
	LightMuted      = lipgloss.Color("#7a8394")
	LightBorder     = lipgloss.Color("#cfd5de")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0a0e1a")
	DarkForeground = lipgloss.Color("#e6edf7")
	DarkPrimary    = lipgloss.Color(render.AccentNeutral)
	DarkMuted      = lipgloss.Color("#5c6b80")
	DarkBorder     = lipgloss.Color("#1f2a3d")

	// Tier accents (same in both modes)
	High    = lipgloss.Color(render.AccentHigh)
	Medium  = lipgloss.Color(render.AccentMedium)
	Low     = lipgloss.Color(render.AccentLow)
	Neutral = lipgloss.Color(render.AccentNeutral)
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode when forced or when COLORFGBG reports a dark
// background.
func DetectTheme(forceDark bool) Theme {
	if forceDark {
		return DarkTheme()
	}
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// TierColor returns the accent for a tier.
func TierColor(t render.Tier) lipgloss.Color {
	return lipgloss.Color(t.Accent())
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	// Input
	InputBox       lipgloss.Style
	ButtonEnabled  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Results
	RiskCard  lipgloss.Style
	Score     lipgloss.Style
	Reason    lipgloss.Style
	Counter   lipgloss.Style
	Timestamp lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	Spinner lipgloss.Style
}

// NewStyles creates a Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	toast := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		Bold(true)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ButtonEnabled: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Padding(0, 2).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Border).
			Padding(0, 2),

		RiskCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Neutral).
			PaddingLeft(2),

		Score: lipgloss.NewStyle().
			Bold(true),

		Reason: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		Counter: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Timestamp: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		ToastInfo:    toast.BorderForeground(Neutral).Foreground(Neutral),
		ToastWarning: toast.BorderForeground(Medium).Foreground(Medium),
		ToastError:   toast.BorderForeground(High).Foreground(High),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// ForTier recolors the risk card and score for a tier.
func (s Styles) ForTier(t render.Tier) (card, score lipgloss.Style) {
	c := TierColor(t)
	return s.RiskCard.BorderForeground(c), s.Score.Foreground(c)
}
