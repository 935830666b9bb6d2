package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const (
	promptPrefix = "\nYou: "
	wordWrap     = 100
)

type readResult struct {
	line string
	err  error
}

type ConsoleUserInteraction struct {
	reader   *bufio.Reader
	out      io.Writer
	renderer *glamour.TermRenderer

	// pending is the read started by an earlier call that was cancelled.
	pending chan readResult
}

// NewConsoleUserInteraction renders answers as markdown only when out is a terminal.
func NewConsoleUserInteraction(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	u := &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}

	if isTerminal(out) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err == nil {
			u.renderer = r
		}
	}

	return u
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ReadInput returns ctx.Err() as soon as ctx is done. A read still in flight
// is kept and its line is returned by the next call.
func (u *ConsoleUserInteraction) ReadInput(ctx context.Context) (string, error) {
	if u.pending == nil {
		bold := color.New(color.FgCyan, color.Bold)
		bold.Fprint(u.out, promptPrefix)

		ch := make(chan readResult, 1)
		u.pending = ch
		go func() {
			line, err := u.reader.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-u.pending:
		u.pending = nil
		return u.finishRead(r)
	}
}

func (u *ConsoleUserInteraction) finishRead(r readResult) (string, error) {
	if r.err != nil {
		if r.err == io.EOF && r.line != "" {
			return strings.TrimSpace(r.line), nil
		}
		if r.err == io.EOF {
			fmt.Fprintln(u.out)
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read user input: %w", r.err)
	}

	return strings.TrimSpace(r.line), nil
}

func (u *ConsoleUserInteraction) ShowAnswer(ctx context.Context, model, answer string) {
	label := color.New(color.FgGreen, color.Bold)
	label.Fprintf(u.out, "\n%s:\n", model)

	if u.renderer != nil {
		rendered, err := u.renderer.Render(answer)
		if err == nil {
			fmt.Fprint(u.out, rendered)
			return
		}
	}

	fmt.Fprintln(u.out, answer)
}

func (u *ConsoleUserInteraction) ShowNotice(ctx context.Context, message string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(u.out, "%s\n", message)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(u.out, "Error: %s\n", message)
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, toolName, arguments string) {
	icon := "🔧"
	if entity.ToolName(toolName).IsRemote() {
		icon = "🔌"
	}

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, toolName)

	summary := formatToolArguments(arguments)
	if summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "   %s\n", summary)
	}
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", truncate(result, 200))
}

// formatToolArguments renders a JSON object as "key=value" pairs sorted by key.
func formatToolArguments(arguments string) string {
	call := entity.ToolCall{Arguments: arguments}
	args, ok := call.ParseArguments()
	if !ok || len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var value string
		switch v := args[k].(type) {
		case string:
			value = v
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			value = string(raw)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k, truncate(value, 60)))
	}

	return strings.Join(parts, ", ")
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
