package builder

import (
	"github.com/aescanero/dagukit/pkg/models"
	"github.com/aescanero/dagukit/pkg/validate"
)

// HTTPExecutorOptions configures the http executor variant of a step.
// Body may be a string (used as-is) or any JSON-serializable value, which is
// serialized once to compact JSON. Timeout is in seconds; zero means unset.
type HTTPExecutorOptions struct {
	Headers map[string]string
	Body    any
	Timeout int
}

// StepBuilder accumulates the fields of a single step.
type StepBuilder struct {
	step     models.Step
	httpOpts *HTTPExecutorOptions
	built    bool
}

// NewStep creates a builder for a step with the given name and command.
func NewStep(name, command string) *StepBuilder {
	return &StepBuilder{step: models.Step{Name: name, Command: command}}
}

// Description sets the step description. An empty string clears the field.
func (b *StepBuilder) Description(description string) *StepBuilder {
	b.step.Description = models.SetNonEmpty(description)
	return b
}

// Depends declares a dependency on a previously added step by name.
func (b *StepBuilder) Depends(name string) *StepBuilder {
	b.step.Depends = models.Set(name)
	return b
}

// HTTPExecutor attaches http executor configuration. The step command must
// be in "METHOD URL" form; this is checked at Build.
func (b *StepBuilder) HTTPExecutor(opts HTTPExecutorOptions) *StepBuilder {
	b.httpOpts = &opts
	return b
}

// Build validates the accumulated step and returns it as an immutable value.
func (b *StepBuilder) Build() (models.Step, error) {
	if b.built {
		return models.Step{}, &validate.FieldError{Field: "step", Reason: "builder already used"}
	}
	b.built = true

	if b.step.Name == "" {
		return models.Step{}, &validate.FieldError{Field: "name", Reason: "step name is required"}
	}
	if b.step.Command == "" {
		return models.Step{}, &validate.FieldError{Field: "command", Reason: "step command is required"}
	}
	if dep, ok := b.step.Depends.Get(); ok && dep == b.step.Name {
		return models.Step{}, &validate.FieldError{Field: "depends", Reason: "step cannot depend on itself"}
	}

	if b.httpOpts != nil {
		executor, err := buildHTTPExecutor(b.step.Command, *b.httpOpts)
		if err != nil {
			return models.Step{}, err
		}
		b.step.Executor = executor
	}

	return b.step, nil
}

// buildHTTPExecutor validates the command format and options and assembles
// the executor config map in the engine's shape.
func buildHTTPExecutor(command string, opts HTTPExecutorOptions) (*models.ExecutorConfig, error) {
	if _, _, err := validate.HTTPCommand(command); err != nil {
		return nil, err
	}

	config := make(map[string]any)

	if len(opts.Headers) > 0 {
		config["headers"] = opts.Headers
	}

	if opts.Body != nil {
		body, err := validate.CoerceBody(opts.Body)
		if err != nil {
			return nil, err
		}
		config["body"] = body
	}

	if opts.Timeout != 0 {
		if err := validate.Positive("timeout", opts.Timeout); err != nil {
			return nil, err
		}
		config["timeout"] = opts.Timeout
	}

	executor := &models.ExecutorConfig{Type: models.ExecutorTypeHTTP}
	if len(config) > 0 {
		executor.Config = config
	}

	return executor, nil
}
