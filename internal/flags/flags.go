package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Audit
	FlagManifest = "manifest"
	FlagTool     = "tool"
	FlagCacheDir = "cache-dir"
	FlagToken    = "token"
	FlagOffline  = "offline"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagFailFast    = "fail-fast"
	FlagVerbose     = "verbose"

	// manifest check
	FlagResolve = "resolve"
)
