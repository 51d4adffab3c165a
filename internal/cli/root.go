package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lintwarden",
	Short: "Audit linter configurations against a canonical ruleset manifest",
	Long: `Lintwarden verifies that a project's on-disk linter configuration files agree
with the canonical ruleset declared in its manifest (lintwarden.toml), and
that inherited rules pinned to remote sources are not shadowed locally.

Lintwarden is audit-only: it reads configuration files, never rewrites them,
and never runs the linters themselves.

Examples:
	# Show available commands and global flags
	lintwarden --help

	# Audit every tool in the manifest
	lintwarden audit

	# Validate the manifest without touching the network
	lintwarden manifest check

	# Print build info
	lintwarden version

Output:
	By default, commands write human-readable output to stdout.
	The audit command supports structured output (see lintwarden audit --help).`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints git invocations and cache diagnostics)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
