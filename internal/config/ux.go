package config

import (
	"fmt"
	"time"
)

// UIConfig holds terminal UI settings.
type UIConfig struct {
	DarkMode bool `yaml:"dark_mode"`

	// NotificationTTL is how long toasts stay on screen.
	NotificationTTL string `yaml:"notification_ttl"`

	// Animation durations
	FrameInterval   string `yaml:"frame_interval"`
	ScoreDuration   string `yaml:"score_duration"`
	CounterDuration string `yaml:"counter_duration"`
}

// DefaultUIConfig returns the UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		NotificationTTL: "4s",
		FrameInterval:   "16ms",
		ScoreDuration:   "1s",
		CounterDuration: "500ms",
	}
}

// GetNotificationTTL returns the toast lifetime.
func (u *UIConfig) GetNotificationTTL() time.Duration {
	return parseDuration(u.NotificationTTL, 4*time.Second)
}

// GetFrameInterval returns the animation tick.
func (u *UIConfig) GetFrameInterval() time.Duration {
	d := parseDuration(u.FrameInterval, 16*time.Millisecond)
	if d == 0 {
		return 16 * time.Millisecond
	}
	return d
}

// GetScoreDuration returns the score readout animation length.
func (u *UIConfig) GetScoreDuration() time.Duration {
	return parseDuration(u.ScoreDuration, time.Second)
}

// GetCounterDuration returns the counter animation length.
func (u *UIConfig) GetCounterDuration() time.Duration {
	return parseDuration(u.CounterDuration, 500*time.Millisecond)
}

// Validate rejects unparsable durations.
func (u *UIConfig) Validate() error {
	fields := map[string]string{
		"notification_ttl": u.NotificationTTL,
		"frame_interval":   u.FrameInterval,
		"score_duration":   u.ScoreDuration,
		"counter_duration": u.CounterDuration,
	}
	for name, v := range fields {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d < 0 {
			return fmt.Errorf("invalid ui.%s %q", name, v)
		}
	}
	return nil
}
