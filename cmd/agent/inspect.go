package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mcp-agent/internal/infrastructure/logger"
	"mcp-agent/internal/infrastructure/mcp"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List what the MCP server offers, or exercise one item",
	Long: `Connects to the configured MCP server and lists its tools, prompts,
resources and resource templates.

Use --read to read a resource, --prompt to render a prompt, or --call to
invoke a tool instead.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("read", "", "Read the resource with this URI")
	inspectCmd.Flags().String("prompt", "", "Render the prompt with this name")
	inspectCmd.Flags().StringToString("prompt-arg", nil, "Prompt argument as key=value, repeatable")
	inspectCmd.Flags().String("call", "", "Call the tool with this name")
	inspectCmd.Flags().String("args", "{}", "Tool arguments as a JSON object")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := mcp.Dial(ctx, mcp.Config{
		Command:       cfg.MCPServer.Command,
		Args:          cfg.MCPServer.Args,
		Env:           cfg.MCPServer.Env,
		ClientName:    "mcp-agent-inspect",
		ClientVersion: version,
	}, logger.NewNopLogger())
	if err != nil {
		return err
	}
	defer session.Close()

	out := cmd.OutOrStdout()
	flags := cmd.Flags()

	if uri, _ := flags.GetString("read"); uri != "" {
		text, err := session.ReadResource(ctx, uri)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	if name, _ := flags.GetString("prompt"); name != "" {
		promptArgs, _ := flags.GetStringToString("prompt-arg")
		return renderPrompt(ctx, out, session, name, promptArgs)
	}

	if name, _ := flags.GetString("call"); name != "" {
		raw, _ := flags.GetString("args")
		var toolArgs map[string]any
		if err := json.Unmarshal([]byte(raw), &toolArgs); err != nil {
			return fmt.Errorf("--args must be a JSON object: %w", err)
		}
		result, err := session.CallTool(ctx, name, toolArgs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result)
		return nil
	}

	return listAll(ctx, out, session)
}

func renderPrompt(ctx context.Context, out io.Writer, session *mcp.Session, name string, args map[string]string) error {
	result, err := session.GetPrompt(ctx, name, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, mcp.RenderPrompt(result))
	return nil
}

func listAll(ctx context.Context, out io.Writer, session *mcp.Session) error {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(out, "Server: %s\n", session.ServerName())

	tools, err := session.ListTools(ctx)
	if err != nil {
		return err
	}
	heading.Fprintln(out, "\nTools:")
	for _, t := range tools {
		fmt.Fprintf(out, "  %s: %s\n", t.Name, t.Description)
	}

	prompts, err := session.ListPrompts(ctx)
	if err != nil {
		return err
	}
	heading.Fprintln(out, "\nPrompts:")
	for _, p := range prompts {
		fmt.Fprintf(out, "  %s: %s\n", p.Name, p.Description)
	}

	resources, err := session.ListResources(ctx)
	if err != nil {
		return err
	}
	heading.Fprintln(out, "\nResources:")
	for _, r := range resources {
		fmt.Fprintf(out, "  %s (%s)\n", r.URI, r.Name)
	}

	templates, err := session.ListResourceTemplates(ctx)
	if err != nil {
		return err
	}
	heading.Fprintln(out, "\nResource templates:")
	for _, rt := range templates {
		uri := ""
		if rt.URITemplate != nil && rt.URITemplate.Template != nil {
			uri = rt.URITemplate.Raw()
		}
		fmt.Fprintf(out, "  %s (%s)\n", uri, rt.Name)
	}

	return nil
}
