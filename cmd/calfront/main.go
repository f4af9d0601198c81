package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calfront/calfront/internal/config"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "calfront",
		Short: "A front end for legacy NAV/C-AL source text",
		Long: `calfront tokenizes and parses NAV/C-AL object export files
(Table, Page, Codeunit, Report, Query, XMLport, MenuSuite) into a token
stream and an abstract syntax tree, surfacing diagnostics for the kind of
language-server features a downstream symbol table and validators build on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("no-color", false, "disable colorized output")
	root.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of formatted text")
	root.PersistentFlags().Bool("trace", false, "log trace-bus events (context pushes/pops, flag changes, tokens) at debug level")

	// Layer calfront.yml/CALFRONT_* settings under the flags above: a flag
	// the user actually passed always wins, but an unset flag falls back to
	// config instead of cobra's own zero-value default.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyConfigDefaults(cmd, cfg)
		return nil
	}

	root.AddCommand(newTokenizeCommand())
	root.AddCommand(newParseCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// applyConfigDefaults overrides a persistent flag's value with the loaded
// config's equivalent setting, but only when the user did not pass that flag
// explicitly on the command line.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("no-color") {
		_ = flags.Set("no-color", boolString(!cfg.Output.Color))
	}
	if !flags.Changed("json") {
		_ = flags.Set("json", boolString(cfg.Output.Format == "json"))
	}
	if !flags.Changed("trace") {
		_ = flags.Set("trace", boolString(cfg.Trace.Enabled))
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
