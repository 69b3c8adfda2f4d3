package models

// StartDagRun is the request body for starting a dag-run. All fields are
// optional; the engine generates a run ID when DagRunId is not supplied.
// Singleton asks the engine to reject the start when another run of the same
// Dag is already active.
type StartDagRun struct {
	Params    Value[string] `json:"params,omitzero"`
	DagRunId  Value[string] `json:"dagRunId,omitzero"`
	DagName   Value[string] `json:"dagName,omitzero"`
	Singleton Value[bool]   `json:"singleton,omitzero"`
}
