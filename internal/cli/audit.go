package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lintwarden/internal/config"
	"lintwarden/internal/engine"
	"lintwarden/internal/flags"
	"lintwarden/internal/manifest"
	"lintwarden/internal/output"
	"lintwarden/internal/remote"
)

var cfg = config.New()

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the configured linters against the manifest",
	Long: `Audit every tool declared in the manifest: inherited rule documents are
resolved from their pinned remote references, merged with local overrides
(failing on conflicts), and the result is compared against the rules
recovered from each tool's actual configuration file.

Authentication:
	Public remote sources need no credentials. For private sources, lintwarden
	uses a GitHub access token: --token, then GITHUB_TOKEN, then GitHub CLI
	auth (gh auth token) if the gh CLI is installed and logged in.

Exit codes:
	0 = clean audit, configurations agree with the manifest
	1 = mismatches detected
	2 = partial failure (some tools could not be audited)
	3 = fatal error (audit did not run)

Examples:
	# Audit everything declared in ./lintwarden.toml
	lintwarden audit

	# Audit one tool with a JSON report
	lintwarden audit --tool eslint --console-format json

	# Machine-readable aggregate to a file, nothing on the console
	lintwarden audit --out report.json --no-console
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}
		os.Exit(runAudit(context.Background(), cfg))
	},
}

func runAudit(ctx context.Context, cfg *config.Config) int {
	m, err := manifest.Load(cfg.Audit.ManifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	resolver, err := newResolver(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 3
	}

	outMgr := output.NewManager()
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 3
		}
	}
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 3
		}
		if err := outMgr.AddSink(fs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 3
		}
	}

	baseDir := filepath.Dir(cfg.Audit.ManifestPath)
	eng := engine.New(cfg, resolver, baseDir)

	results, runErr := eng.Run(ctx, m)
	for _, r := range results {
		if err := outMgr.Write(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	if err := outMgr.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 3
	}

	return engine.ExitCode(false, results)
}

func newResolver(ctx context.Context, cfg *config.Config) (*remote.Resolver, error) {
	cacheDir := cfg.Audit.CacheDir
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("determine cache dir (use --cache-dir): %w", err)
		}
		cacheDir = filepath.Join(base, "lintwarden")
	}

	token, _, err := remote.ResolveAuthToken(ctx, cfg.Audit.Token)
	if err != nil {
		return nil, fmt.Errorf("resolve auth token: %w", err)
	}

	r := remote.NewResolver(cacheDir)
	r.Token = token
	r.DefaultBranch = remote.NewDefaultBranchLookup(token)
	if cfg.Runtime.Verbose {
		r.Verbose = os.Stderr
		r.Runner = &remote.GitRunner{Verbose: os.Stderr}
	}
	return r, nil
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&cfg.Audit.ManifestPath, flags.FlagManifest, cfg.Audit.ManifestPath, "Path to the ruleset manifest")
	auditCmd.Flags().StringSliceVar(&cfg.Audit.Tools, flags.FlagTool, nil, "Audit only these tools (repeatable; comma-separated accepted)")
	auditCmd.Flags().StringVar(&cfg.Audit.CacheDir, flags.FlagCacheDir, "", "Cache root for remote rule sources (default: user cache dir)")
	auditCmd.Flags().StringVar(&cfg.Audit.Token, flags.FlagToken, "", "GitHub access token for private remote sources")
	auditCmd.Flags().BoolVar(&cfg.Audit.Offline, flags.FlagOffline, false, "Never touch the network; tools with remote inheritance are reported as errors")

	auditCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json (default: text)")
	auditCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write an aggregate JSON report to this path")
	auditCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out)")

	auditCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Concurrent tool audits (default: 4)")
	auditCmd.Flags().BoolVar(&cfg.Runtime.FailFast, flags.FlagFailFast, false, "Stop on the first tool error (default: false)")
}
