// Package engine orchestrates the audit: per tool, resolve the inherited
// rule document, merge it with local overrides, recover the actual rules from
// the on-disk configuration file, and compare. Independent tools touch
// disjoint files and disjoint cache keys, so they run concurrently; same-key
// resolution discipline lives in the remote resolver.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"lintwarden/internal/audit"
	"lintwarden/internal/config"
	"lintwarden/internal/inherit"
	"lintwarden/internal/manifest"
	"lintwarden/internal/remote"
	"lintwarden/internal/ruleparse"
)

type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// ToolResult is the audit outcome for one tool. Mismatches are audit output,
// not errors; Message carries the failure reason only when Status is ERROR.
type ToolResult struct {
	Tool       string           `json:"tool"`
	Status     Status           `json:"status"`
	ConfigPath string           `json:"config_path,omitempty"`
	Source     string           `json:"source,omitempty"`
	Mismatches []audit.Mismatch `json:"mismatches,omitempty"`
	Message    string           `json:"message,omitempty"`
}

type Engine struct {
	cfg      *config.Config
	resolver *remote.Resolver
	// baseDir anchors relative config paths (the manifest's directory).
	baseDir string
}

func New(cfg *config.Config, resolver *remote.Resolver, baseDir string) *Engine {
	return &Engine{cfg: cfg, resolver: resolver, baseDir: baseDir}
}

// ExitCode maps a finished run onto the process exit contract:
// 0 clean, 1 mismatches found, 2 partial failure (some tools errored),
// 3 fatal (audit did not run).
func ExitCode(fatal bool, results []ToolResult) int {
	if fatal {
		return 3
	}
	partial := false
	mismatched := false
	for _, r := range results {
		switch r.Status {
		case StatusError:
			partial = true
		case StatusFail:
			mismatched = true
		}
	}
	if partial {
		return 2
	}
	if mismatched {
		return 1
	}
	return 0
}

// Run audits every selected tool and returns one ToolResult per tool, in
// manifest order. The returned error is fatal (nothing was audited, or
// fail-fast tripped); per-tool problems are reported as StatusError results.
func (e *Engine) Run(ctx context.Context, m *manifest.Manifest) ([]ToolResult, error) {
	tools, err := e.selectTools(m)
	if err != nil {
		return nil, err
	}

	results := make([]ToolResult, len(tools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Runtime.Concurrency)
	for i, tool := range tools {
		g.Go(func() error {
			res := e.auditTool(gctx, tool)
			results[i] = res
			if e.cfg.Runtime.FailFast && res.Status == StatusError {
				return fmt.Errorf("tool %s: %s", res.Tool, res.Message)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (e *Engine) selectTools(m *manifest.Manifest) ([]manifest.Tool, error) {
	all := m.Tools()
	if len(e.cfg.Audit.Tools) == 0 {
		return all, nil
	}

	byName := make(map[string]manifest.Tool, len(all))
	for _, t := range all {
		byName[t.Name] = t
	}

	names := append([]string{}, e.cfg.Audit.Tools...)
	sort.Strings(names)

	selected := make([]manifest.Tool, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("tool %q is not declared in the manifest", name)
		}
		selected = append(selected, t)
	}
	return selected, nil
}

func (e *Engine) auditTool(ctx context.Context, tool manifest.Tool) ToolResult {
	res := ToolResult{
		Tool:       tool.Name,
		ConfigPath: tool.ConfigPath,
		Source:     tool.Extends,
	}

	expected := tool.Ruleset
	if expected == nil {
		expected = ruleparse.RuleMap{}
	}

	if tool.Extends != "" {
		merged, err := e.inheritedRules(ctx, tool, expected)
		if err != nil {
			res.Status = StatusError
			res.Message = err.Error()
			return res
		}
		expected = merged
	}

	actual, err := e.actualRules(tool)
	if err != nil {
		res.Status = StatusError
		res.Message = err.Error()
		return res
	}

	mismatches, err := audit.Run(tool.Mode, expected, actual)
	if err != nil {
		res.Status = StatusError
		res.Message = err.Error()
		return res
	}

	res.Mismatches = mismatches
	if len(mismatches) > 0 {
		res.Status = StatusFail
	} else {
		res.Status = StatusPass
	}
	return res
}

// inheritedRules fetches and parses the tool's inherited rule document, then
// merges the local ruleset into it. Conflicts between inherited and local
// values are terminal for the tool.
func (e *Engine) inheritedRules(ctx context.Context, tool manifest.Tool, local ruleparse.RuleMap) (ruleparse.RuleMap, error) {
	if e.cfg.Audit.Offline {
		return nil, fmt.Errorf("offline mode: tool inherits from %s and cannot be audited without the network", tool.Extends)
	}

	// Grammar was validated at manifest load; a failure here is a bug.
	ref, err := remote.ParseRef(tool.Extends)
	if err != nil {
		return nil, err
	}

	content, err := e.resolver.FetchFile(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve inherited rules: %w", err)
	}

	inherited, err := ruleparse.FromSource(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse inherited rules from %s: %w", tool.Extends, err)
	}

	return inherit.Merge(tool.Name, tool.Extends, inherited, local)
}

func (e *Engine) actualRules(tool manifest.Tool) (ruleparse.RuleMap, error) {
	path := tool.ConfigPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.baseDir, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config for %s: %w", tool.Name, err)
	}

	actual, err := ruleparse.FromSource(string(raw))
	if err != nil {
		return nil, fmt.Errorf("recover rules from %s: %w", tool.ConfigPath, err)
	}
	return actual, nil
}
