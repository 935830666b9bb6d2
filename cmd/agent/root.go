package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mcp-agent",
	Short: "Chat with a local Ollama model that can call MCP tools",
	Long: `mcp-agent connects a local Ollama model to the tools of an MCP server
started as a subprocess, plus a couple of built-in tools.

Without a subcommand it starts the interactive chat.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./agent.yaml when present)")
	flags.String("model", "", "Ollama model to chat with")
	flags.String("ollama-url", "", "OpenAI-compatible Ollama endpoint")
	flags.String("mcp-command", "", "MCP server command (default: the bundled calculator)")
	flags.StringSlice("mcp-arg", nil, "MCP server argument, repeatable")
	flags.Int("max-turns", 0, "Maximum model calls per user message")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
}
