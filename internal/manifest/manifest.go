// Package manifest loads the canonical ruleset manifest (lintwarden.toml):
// which remote sources each tool inherits from, the local rule overrides, and
// where each tool's actual configuration file lives on disk.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"lintwarden/internal/audit"
	"lintwarden/internal/remote"
	"lintwarden/internal/ruleparse"
)

const DefaultPath = "lintwarden.toml"

type Manifest struct {
	// Extends maps tool name to a remote reference string
	// (host:owner/repo[/path]@version) whose resolved content is the
	// inherited rule document for that tool.
	Extends map[string]string `toml:"extends"`

	// Configs maps tool name to the on-disk configuration file audited for
	// that tool.
	Configs map[string]string `toml:"configs"`

	// Rulesets holds the local expected RuleMap per tool.
	Rulesets map[string]ruleparse.RuleMap `toml:"rulesets"`

	Audit AuditSection `toml:"audit"`
}

type AuditSection struct {
	// Mode selects the comparator per tool: "severity" (default) or "exact".
	Mode map[string]string `toml:"mode"`
}

// Tool is one audit target assembled from the manifest tables.
type Tool struct {
	Name       string
	ConfigPath string
	// Extends is the raw remote reference string, empty when the tool
	// inherits nothing.
	Extends string
	Ruleset  ruleparse.RuleMap
	Mode     audit.Mode
}

// Load reads and validates a manifest. Validation includes the remote
// reference grammar for every extends entry, so a malformed reference fails
// before any network access is attempted.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	for tool, refStr := range m.Extends {
		if _, err := remote.ParseRef(refStr); err != nil {
			return fmt.Errorf("extends.%s: %w", tool, err)
		}
	}

	for tool, mode := range m.Audit.Mode {
		switch audit.Mode(mode) {
		case audit.ModeSeverity, audit.ModeExact:
		default:
			return fmt.Errorf("audit.mode.%s: unsupported mode %q (must be one of: severity, exact)", tool, mode)
		}
	}

	for _, tool := range m.toolNames() {
		path, ok := m.Configs[tool]
		if !ok || path == "" {
			return fmt.Errorf("tool %q declares rules but has no configs.%s entry naming the file to audit", tool, tool)
		}
	}

	if len(m.toolNames()) == 0 {
		return errors.New("manifest declares no tools (empty extends and rulesets)")
	}

	return nil
}

// Tools returns the audit targets in stable order: every tool named by
// extends or rulesets. Canonicalized local rulesets compare cleanly against
// values recovered from JSON-like configs.
func (m *Manifest) Tools() []Tool {
	names := m.toolNames()
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		t := Tool{
			Name:       name,
			ConfigPath: m.Configs[name],
			Extends:    m.Extends[name],
			Mode:       audit.ModeSeverity,
		}
		if rs, ok := m.Rulesets[name]; ok {
			t.Ruleset = ruleparse.Canonicalize(rs)
		}
		if mode, ok := m.Audit.Mode[name]; ok {
			t.Mode = audit.Mode(mode)
		}
		out = append(out, t)
	}
	return out
}

func (m *Manifest) toolNames() []string {
	seen := make(map[string]struct{})
	for tool := range m.Extends {
		seen[tool] = struct{}{}
	}
	for tool := range m.Rulesets {
		seen[tool] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for tool := range seen {
		names = append(names, tool)
	}
	sort.Strings(names)
	return names
}
