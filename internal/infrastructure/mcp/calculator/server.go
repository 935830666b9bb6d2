// Package calculator is a small MCP server exposing arithmetic over stdio.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName = "Calculator MCP Server"

	OperationsURI = "calculator://operations"
)

var ErrDivisionByZero = errors.New("cannot divide by zero")

var operations = []string{"add", "subtract", "multiply", "divide"}

// Calculate applies operation to a and b.
func Calculate(a, b float64, operation string) (float64, error) {
	switch operation {
	case "add":
		return a + b, nil
	case "subtract":
		return a - b, nil
	case "multiply":
		return a * b, nil
	case "divide":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("invalid operation %q", operation)
	}
}

// NewServer builds the MCP server with its tool, resource and prompt.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
	)

	calculateTool := mcp.NewTool("calculate",
		mcp.WithDescription("Apply an arithmetic operation to two numbers"),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("Operation to apply"),
			mcp.Enum(operations...),
		),
	)
	s.AddTool(calculateTool, handleCalculate)

	s.AddResource(mcp.NewResource(OperationsURI, "Supported operations",
		mcp.WithResourceDescription("Operations accepted by the calculate tool"),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      OperationsURI,
				MIMEType: "text/plain",
				Text:     strings.Join(operations, "\n"),
			},
		}, nil
	})

	s.AddPrompt(mcp.NewPrompt("solve",
		mcp.WithPromptDescription("Ask the model to solve an arithmetic expression with the calculator"),
		mcp.WithArgument("expression",
			mcp.ArgumentDescription("Expression to solve, e.g. 3 * 7"),
			mcp.RequiredArgument(),
		),
	), handleSolvePrompt)

	return s
}

// ServeStdio serves the calculator on stdin/stdout until the input closes.
func ServeStdio(version string) error {
	return server.ServeStdio(NewServer(version))
}

func handleCalculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireFloat("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := request.RequireFloat("b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := request.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := Calculate(a, b, op)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strconv.FormatFloat(result, 'f', -1, 64)), nil
}

func handleSolvePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	expr := request.Params.Arguments["expression"]
	if expr == "" {
		return nil, errors.New("expression is required")
	}

	return mcp.NewGetPromptResult("Solve an expression",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser,
				mcp.NewTextContent(fmt.Sprintf("Use the calculate tool to solve %s and explain each step.", expr)),
			),
		},
	), nil
}
