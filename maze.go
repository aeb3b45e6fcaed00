package main

import (
	"encoding/json"
	"fmt"

	"github.com/beka-birhanu/vinom-qlearn/maze"
	"github.com/spf13/cobra"
)

func mazeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Print the maze layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(maze.Default.Config())
			}
			fmt.Fprint(out, maze.Default)
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the maze configuration as JSON")
	return cmd
}
