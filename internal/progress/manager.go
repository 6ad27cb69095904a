// Package progress provides a terminal progress bar for chart rendering.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Manager handles the progress display
type Manager struct {
	enabled   bool
	total     int
	completed int
	failed    int
	current   string
	bar       *progressbar.ProgressBar
	out       io.Writer
	startTime time.Time
}

// NewManager creates a progress manager for total charts writing to stderr
func NewManager(total int, enabled bool) *Manager {
	return NewManagerWithWriter(total, enabled, os.Stderr)
}

// NewManagerWithWriter creates a progress manager that renders to w
func NewManagerWithWriter(total int, enabled bool, w io.Writer) *Manager {
	m := &Manager{
		enabled:   enabled,
		total:     total,
		out:       w,
		startTime: time.Now(),
	}

	if enabled {
		m.setupProgressBar()
	}

	return m
}

// setupProgressBar initializes the progress bar
func (m *Manager) setupProgressBar() {
	m.bar = progressbar.NewOptions(m.total,
		progressbar.OptionSetDescription("Rendering charts"),
		progressbar.OptionSetWriter(m.out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("charts"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(m.out)
		}),
	)
}

// StartChart marks a chart as being rendered
func (m *Manager) StartChart(name string) {
	m.current = name
	if !m.enabled {
		return
	}
	m.bar.Describe(fmt.Sprintf("%-30s", truncate(name, 30)))
}

// CompleteChart marks the current chart as done
func (m *Manager) CompleteChart(success bool) {
	m.completed++
	if !success {
		m.failed++
	}
	m.current = ""
	if !m.enabled {
		return
	}
	_ = m.bar.Add(1)
}

// Finish closes the bar; it is a no-op when the display is disabled
func (m *Manager) Finish() {
	if !m.enabled {
		return
	}
	_ = m.bar.Finish()
}

// IsEnabled returns whether progress display is enabled
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// Completed returns how many charts have finished, successfully or not
func (m *Manager) Completed() int {
	return m.completed
}

// Failed returns how many charts failed
func (m *Manager) Failed() int {
	return m.failed
}

// Elapsed returns the time since the manager was created, formatted for display
func (m *Manager) Elapsed() string {
	return formatDuration(time.Since(m.startTime))
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

// truncate truncates a string to max length with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
