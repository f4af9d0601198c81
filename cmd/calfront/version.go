package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the calfront version, Git commit, build date, and Go version.",
		Run: func(cmd *cobra.Command, args []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			title := color.New(color.FgCyan, color.Bold)
			if noColor {
				title.DisableColor()
			}

			title.Print("calfront version: ")
			fmt.Println(Version)
			title.Print("Git commit: ")
			fmt.Println(GitCommit)
			title.Print("Build date: ")
			fmt.Println(BuildDate)
			title.Print("Go version: ")
			fmt.Println(runtime.Version())
		},
	}
}
