package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calfront/calfront/internal/source"
	"github.com/calfront/calfront/internal/tracelog"
	"github.com/calfront/calfront/internal/ui"
	"github.com/calfront/calfront/lexer"
)

func newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Dump the token stream for a NAV/C-AL source file",
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
				traceFn = tracelog.Adapter(tracelog.NewLogger(), "tokenize")
			}
			toks, warnings := lexer.New(f.Text, traceFn).Tokenize()
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(toks)
			}

			tbl := ui.NewTable(cmd.OutOrStdout(), []string{"Kind", "Value", "Line", "Col", "Start", "End"}, noColor)
			for _, t := range toks {
				tbl.AddRow(t.Kind.String(), t.Value, itoa(t.Line), itoa(t.Column), itoa(t.Start), itoa(t.End))
			}
			tbl.Render()
			return nil
		},
	}
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
