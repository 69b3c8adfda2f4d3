package models

// Executor type tags recognized by the engine.
const (
	ExecutorTypeShell = "shell"
	ExecutorTypeHTTP  = "http"
)

// HTTP methods accepted in an http executor command.
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

// Dag is a workflow specification: an ordered set of steps plus metadata.
// Step order is insertion order and is meaningful to the engine as the
// default execution order when no explicit dependency is declared.
type Dag struct {
	Name          string        `json:"name"`
	Description   Value[string] `json:"description,omitzero"`
	Schedule      Value[string] `json:"schedule,omitzero"`
	Tags          []string      `json:"tags,omitempty"`
	MaxActiveRuns Value[int]    `json:"maxActiveRuns,omitzero"`
	Steps         []Step        `json:"steps,omitempty"`
}

// Step is one unit of work within a Dag. A nil Executor means the default
// shell executor: the command is run as-is.
type Step struct {
	Name        string          `json:"name"`
	Command     string          `json:"command"`
	Description Value[string]   `json:"description,omitzero"`
	Depends     Value[string]   `json:"depends,omitzero"`
	Executor    *ExecutorConfig `json:"executor,omitempty"`
}

// ExecutorConfig selects the interpretation strategy for a step's command.
// Type is the variant tag; Config holds variant-specific settings. For the
// http variant the recognized keys are "headers" (map of string to string),
// "body" (JSON text) and "timeout" (positive integer seconds).
type ExecutorConfig struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}
