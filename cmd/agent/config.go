package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mcp-agent/internal/infrastructure/env"
)

const calculatorCommand = "calculator"

func loadConfig(cmd *cobra.Command) (env.Config, error) {
	env.LoadDotEnv()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := env.Load(configFile, cmd.Flags())
	if err != nil {
		return env.Config{}, err
	}

	if cfg.MCPServer.Command == "" {
		self, err := os.Executable()
		if err != nil {
			return env.Config{}, fmt.Errorf("locate executable: %w", err)
		}
		cfg.MCPServer.Command = self
		cfg.MCPServer.Args = []string{calculatorCommand}
	}

	return cfg, nil
}
