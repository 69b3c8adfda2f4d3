// Package builder provides fluent construction of workflow specifications.
//
// Two builders cooperate:
//   - StepBuilder assembles a single step, optionally with an HTTP executor.
//   - DagBuilder accumulates metadata and steps and emits an immutable Dag.
//
// Builders are append-only and single-use: Build may be called once, runs
// all validation, and either returns the finished value or a
// *validate.FieldError. Step order is preserved exactly as added.
//
// Example:
//
//	dag, err := builder.NewDag("nightly-report").
//	    Schedule("0 2 * * *").
//	    AddStep("extract", "python extract.py").
//	    AddStep("load", "python load.py").
//	    Build()
package builder
