package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"lintwarden/internal/audit"
	"lintwarden/internal/engine"
)

// ConsoleSink renders tool results for humans ("text") or as an aggregate
// JSON array ("json").
type ConsoleSink struct {
	writer  io.Writer
	format  string
	mu      sync.Mutex
	results []engine.ToolResult
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &ConsoleSink{writer: w, format: format}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := v.(engine.ToolResult)
	if !ok {
		return nil
	}

	switch s.format {
	case "json":
		s.results = append(s.results, r)
		return nil
	case "text":
		return s.writeText(r)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(r engine.ToolResult) error {
	header := statusColor(r.Status).Sprintf("[%s]", r.Status)
	if _, err := fmt.Fprintf(s.writer, "%s %s (%s)", header, r.Tool, r.ConfigPath); err != nil {
		return err
	}
	if r.Source != "" {
		if _, err := fmt.Fprintf(s.writer, " extends %s", r.Source); err != nil {
			return err
		}
	}
	if r.Message != "" {
		if _, err := fmt.Fprintf(s.writer, " - %s", r.Message); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(s.writer); err != nil {
		return err
	}

	for _, m := range r.Mismatches {
		if _, err := fmt.Fprintf(s.writer, "  %s %s\n", kindColor(m.Kind).Sprint(string(m.Kind)), m); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s.results)
	}
	if s.format != "text" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}

func statusColor(st engine.Status) *color.Color {
	switch st {
	case engine.StatusPass:
		return color.New(color.FgGreen)
	case engine.StatusFail:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func kindColor(k audit.MismatchKind) *color.Color {
	switch k {
	case audit.KindMissing:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
