package main

import (
	"github.com/spf13/cobra"

	"mcp-agent/internal/infrastructure/mcp/calculator"
)

var calculatorCmd = &cobra.Command{
	Use:   calculatorCommand,
	Short: "Run the bundled calculator MCP server on stdio",
	Long: `Serves the calculator MCP server over standard input/output.
The chat starts it as its tool server when no other command is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return calculator.ServeStdio(version)
	},
}

func init() {
	rootCmd.AddCommand(calculatorCmd)
}
