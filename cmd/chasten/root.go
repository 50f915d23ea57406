package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dkoosis/chasten/internal/version"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "chasten",
		Short: "Check a code base against configurable structural rules",
		Long: `chasten resolves a configuration that references one or more checks
files, runs every check's pattern through an external search tool,
and reports whether each match count falls within the check's bounds.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate(version.String() + "\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newConfigureCmd(a))
	root.AddCommand(newIntegrateCmd(a))
	return root
}

// argsAtLeast is cobra.MinimumNArgs reported as a usage error.
func argsAtLeast(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("missing %s", what)
		}
		return nil
	}
}

// argsExactly is cobra.ExactArgs reported as a usage error.
func argsExactly(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("expected %s, got %d argument(s)", what, len(args))
		}
		return nil
	}
}

// addDebugFlags registers the logging flags shared by every command.
func addDebugFlags(f *pflag.FlagSet, level, dest *string) {
	f.StringVar(level, "debug-level", "ERROR", "Log level: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	f.StringVar(dest, "debug-dest", "console", "Log destination: console or syslog")
}
