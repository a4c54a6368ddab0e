package types

import "context"

// Runtime is the slice of the host agent runtime the plugins in this module
// depend on: an agent identity and a settings lookup. Concrete runtimes live
// in the host, never here.
type Runtime interface {
	AgentName() string
	Setting(key string) string
}

// Client is the two-method contract through which a host runtime manages a
// named long-lived client instance.
type Client interface {
	Start(ctx context.Context, rt Runtime) error
	Stop(ctx context.Context, rt Runtime) error
}

// Plugin groups the tools a plugin contributes to the host's tool-invocation
// layer.
type Plugin interface {
	Name() string
	Description() string
	Tools() []Tool
}

// Tool is one invocable capability. Handlers return human-readable text for
// the invoking agent.
type Tool struct {
	Name        string
	Description string
	Parameters  []Parameter
	Handler     func(ctx context.Context, args map[string]interface{}) (string, error)
}

// Parameter describes one tool argument for the host's invocation layer.
type Parameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
}
