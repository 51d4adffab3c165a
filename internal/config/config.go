package config

import (
	"errors"
	"fmt"
	"strings"
)

type Config struct {
	// MAINTAINER NOTE: if you add/change/remove fields that affect audit
	// behavior, keep the CLI flag wiring in internal/cli/audit.go in sync.
	Audit   Audit
	Output  Output
	Runtime Runtime
}

type Audit struct {
	// ManifestPath is the canonical ruleset manifest (see --manifest).
	ManifestPath string

	// Tools restricts the audit to a subset of manifest tools (see --tool).
	// Values may be provided as repeated flags and/or comma-separated lists.
	Tools []string

	// CacheDir is the root for remote-reference cache entries (see
	// --cache-dir). Entries are disposable and rebuilt on corruption.
	CacheDir string

	// Token is an explicit GitHub access token (see --token). When empty,
	// GITHUB_TOKEN and gh CLI auth are consulted.
	Token string

	// Offline forbids network access; tools that inherit remote rules are
	// reported as errors instead of resolved (see --offline).
	Offline bool
}

type Output struct {
	// ConsoleFormat controls the console sink (see --console-format).
	// Allowed values: text, json.
	ConsoleFormat string

	// Out writes an aggregate JSON report to this path (see --out).
	Out string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Runtime struct {
	// Concurrency bounds how many tools are audited in parallel (see
	// --concurrency). Must be >= 1.
	Concurrency int

	// FailFast stops the audit on the first tool error (see --fail-fast).
	FailFast bool

	// Verbose enables diagnostics for git and cache operations.
	Verbose bool
}

func New() *Config {
	return &Config{
		Audit: Audit{
			ManifestPath: "lintwarden.toml",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 4,
		},
	}
}

func (c *Config) Validate() error {
	c.Audit.Tools = splitCommaList(c.Audit.Tools)

	if strings.TrimSpace(c.Audit.ManifestPath) == "" {
		return errors.New("--manifest must not be empty")
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json)", c.Output.ConsoleFormat)
	}

	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
