package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calfront/calfront/calvalidate"
	"github.com/calfront/calfront/internal/source"
	"github.com/calfront/calfront/internal/tracelog"
	"github.com/calfront/calfront/internal/ui"
	"github.com/calfront/calfront/lexer"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Run the position validator against a source file's token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			asJSON, _ := cmd.Flags().GetBool("json")
			trace, _ := cmd.Flags().GetBool("trace")

			f, err := source.Load(args[0])
			if err != nil {
				return err
			}

			var traceFn lexer.TraceFunc
			if trace {
				traceFn = tracelog.Adapter(tracelog.NewLogger(), "validate")
			}
			toks, _ := lexer.New(f.Text, traceFn).Tokenize()
			result := calvalidate.Validate(f.Text, toks)

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			ui.WriteValidationResult(cmd.OutOrStdout(), result.Valid, result.Errors, result.Warnings, noColor)
			if !result.Valid {
				return fmt.Errorf("position validator found %d integrity error(s)", len(result.Errors))
			}
			return nil
		},
	}
}
