// Package models defines the wire entities exchanged with the orchestration
// engine's HTTP API.
//
// The engine distinguishes a field that is absent from a field that is
// present with a null value, and rejects unexpected nulls on some endpoints.
// Every optional field is therefore typed as Value[T], which tracks whether
// the field was ever set, and is omitted from the serialized form unless it
// holds a value.
//
// Entities:
//   - Dag, Step, ExecutorConfig: the workflow specification
//   - StartDagRun: request to start an execution
//   - DagRunId, DagRunResult, NodeStatus: run identification and status
package models
