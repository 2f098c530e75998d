package ai

import "context"

// Agent turns a conversation transcript into a reply, calling tools as it sees fit.
type Agent interface {
	Invoke(ctx context.Context, input string, tools []Tool) (string, error)
}

// ToolParam is a single string argument of a Tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
}

// ToolHandler runs a tool. It reports failures in the returned text so the
// agent can relay them to the user.
type ToolHandler func(ctx context.Context, args map[string]string) string

// Tool is an action the agent may invoke by name.
type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
	Handler     ToolHandler
}
