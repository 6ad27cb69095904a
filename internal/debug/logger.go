// Package debug writes a structured JSON log of a report run for troubleshooting.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const debugSchemaVersion = 1

// Logger records the load step and every chart of a run
type Logger struct {
	enabled    bool
	outputPath string
	session    *Session
}

// Session represents the entire debug session
type Session struct {
	SchemaVersion int                    `json:"schema_version"`
	StartTime     time.Time              `json:"start_time"`
	EndTime       *time.Time             `json:"end_time,omitempty"`
	Load          *LoadLog               `json:"load,omitempty"`
	Charts        []*ChartLog            `json:"charts"`
	SystemInfo    map[string]interface{} `json:"system_info"`
}

// LoadLog captures how the dataset was read
type LoadLog struct {
	Path     string        `json:"path"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// ChartLog captures one chart render
type ChartLog struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Path      string        `json:"path,omitempty"`
	Status    string        `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration"`
	Bytes     int64         `json:"bytes,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// NewLogger creates a new debug logger
// enabled: enables debug logging
// outputDir: base output directory; the log is written to outputDir/debug
func NewLogger(enabled bool, outputDir string) *Logger {
	logger := &Logger{
		enabled: enabled,
		session: &Session{
			SchemaVersion: debugSchemaVersion,
			StartTime:     time.Now(),
			Charts:        []*ChartLog{},
			SystemInfo: map[string]interface{}{
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
				"timestamp":  time.Now().Format(time.RFC3339),
			},
		},
	}

	if enabled {
		logger.outputPath = filepath.Join(outputDir, "debug")
	}

	return logger
}

// IsEnabled returns whether debug logging is enabled
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// LogLoad records the dataset load
func (l *Logger) LogLoad(path string, records int, duration time.Duration, err error) {
	if !l.enabled {
		return
	}
	load := &LoadLog{Path: path, Records: records, Duration: duration}
	if err != nil {
		load.Error = err.Error()
	}
	l.session.Load = load
}

// StartChart begins logging a chart render
func (l *Logger) StartChart(name, kind, path string) *ChartLog {
	if !l.enabled {
		return nil
	}
	chartLog := &ChartLog{
		ID:        fmt.Sprintf("chart-%04d", len(l.session.Charts)+1),
		Name:      name,
		Kind:      kind,
		Path:      path,
		Status:    "running",
		StartTime: time.Now(),
	}
	l.session.Charts = append(l.session.Charts, chartLog)
	return chartLog
}

// LogError attaches an error to a chart and marks it failed
func (l *Logger) LogError(chartLog *ChartLog, err error) {
	if !l.enabled || chartLog == nil || err == nil {
		return
	}
	chartLog.Error = err.Error()
	chartLog.Status = "failed"
}

// EndChart marks a chart as finished. Unless it already failed it is completed.
func (l *Logger) EndChart(chartLog *ChartLog, bytes int64) {
	if !l.enabled || chartLog == nil {
		return
	}
	now := time.Now()
	chartLog.EndTime = &now
	chartLog.Duration = now.Sub(chartLog.StartTime)
	chartLog.Bytes = bytes
	if chartLog.Status == "running" {
		chartLog.Status = "completed"
	}
}

// Finalize completes the debug session and writes session.json
func (l *Logger) Finalize() error {
	if !l.enabled {
		return nil
	}

	now := time.Now()
	l.session.EndTime = &now

	if err := os.MkdirAll(l.outputPath, 0750); err != nil {
		return fmt.Errorf("failed to create debug output directory: %w", err)
	}

	data, err := json.MarshalIndent(l.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}
	if err := os.WriteFile(l.GetSessionPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// GetOutputPath returns the path where debug data will be written (debug directory)
func (l *Logger) GetOutputPath() string {
	return l.outputPath
}

// GetSessionPath returns the path to the session.json file
func (l *Logger) GetSessionPath() string {
	if !l.enabled {
		return ""
	}
	return filepath.Join(l.outputPath, "session.json")
}
