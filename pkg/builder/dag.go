package builder

import (
	"github.com/aescanero/dagukit/pkg/models"
	"github.com/aescanero/dagukit/pkg/validate"
)

// DagBuilder accumulates a workflow specification. The name is fixed at
// construction; steps are appended in call order and that order is preserved
// verbatim in the built Dag.
type DagBuilder struct {
	dag   models.Dag
	built bool
	err   error
}

// NewDag creates a builder for a Dag with the given name.
func NewDag(name string) *DagBuilder {
	return &DagBuilder{dag: models.Dag{Name: name}}
}

// Description sets the Dag description. An empty string clears the field.
func (b *DagBuilder) Description(description string) *DagBuilder {
	b.dag.Description = models.SetNonEmpty(description)
	return b
}

// Schedule sets the cron schedule expression. Syntax is validated by the
// engine, not here. An empty string clears the field.
func (b *DagBuilder) Schedule(schedule string) *DagBuilder {
	b.dag.Schedule = models.SetNonEmpty(schedule)
	return b
}

// Tags sets the Dag tags, preserving order. The slice is copied so later
// mutation of the arguments cannot reach the built Dag.
func (b *DagBuilder) Tags(tags ...string) *DagBuilder {
	b.dag.Tags = append([]string(nil), tags...)
	return b
}

// MaxActiveRuns bounds the number of concurrent runs of this Dag.
func (b *DagBuilder) MaxActiveRuns(n int) *DagBuilder {
	if b.err == nil {
		if err := validate.Positive("maxActiveRuns", n); err != nil {
			b.err = err
			return b
		}
	}
	b.dag.MaxActiveRuns = models.Set(n)
	return b
}

// AddStep appends an inline shell-executor step with the given name and
// command.
func (b *DagBuilder) AddStep(name, command string) *DagBuilder {
	step, err := NewStep(name, command).Build()
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.dag.Steps = append(b.dag.Steps, step)
	return b
}

// AddStepModels appends pre-built steps, e.g. produced by a StepBuilder with
// a non-default executor.
func (b *DagBuilder) AddStepModels(steps ...models.Step) *DagBuilder {
	b.dag.Steps = append(b.dag.Steps, steps...)
	return b
}

// Build validates the accumulated specification and returns it as an
// immutable value. It fails on the first violated invariant: a chained
// setter error, a missing name, or a cross-step name/depends conflict.
func (b *DagBuilder) Build() (models.Dag, error) {
	if b.built {
		return models.Dag{}, &validate.FieldError{Field: "dag", Reason: "builder already used"}
	}
	b.built = true

	if b.err != nil {
		return models.Dag{}, b.err
	}
	if b.dag.Name == "" {
		return models.Dag{}, &validate.FieldError{Field: "name", Reason: "dag name is required"}
	}
	if err := validate.StepNames(b.dag.Steps); err != nil {
		return models.Dag{}, err
	}

	return b.dag, nil
}
