package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// main entry point of the service and its tools
func main() {
	rootCommand := &cobra.Command{
		Use:   "qlearn",
		Short: "Deterministic Q-learning maze agent",
	}
	rootCommand.AddCommand(serveCommand(), trainCommand(), mazeCommand())

	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
