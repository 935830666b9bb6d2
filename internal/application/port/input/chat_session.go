package input

import "context"

// ChatSession runs an interactive conversation until the user leaves.
type ChatSession interface {
	Run(ctx context.Context) error
}
