package models

// StatusLabel is the engine-reported status of a dag-run or node. It is an
// open string: the engine may introduce labels beyond the constants below,
// and decoding never rejects an unknown one.
type StatusLabel string

// Known status labels.
const (
	StatusQueued    StatusLabel = "queued"
	StatusRunning   StatusLabel = "running"
	StatusSucceeded StatusLabel = "succeeded"
	StatusFailed    StatusLabel = "failed"
	StatusCancelled StatusLabel = "cancelled"
)

// IsTerminal reports whether the label is one of the known terminal states.
// Unknown labels are treated as non-terminal so that pollers keep observing.
func (s StatusLabel) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// DagRunId identifies one execution of a Dag. Returned by a successful start.
type DagRunId struct {
	DagRunId string `json:"dagRunId"`
}

// DagRunResult is a point-in-time snapshot of a dag-run as reported by the
// engine. Nodes mirror the Dag's steps by name, in step order.
type DagRunResult struct {
	DagRunId    string       `json:"dagRunId"`
	StatusLabel StatusLabel  `json:"statusLabel"`
	Nodes       []NodeStatus `json:"nodes"`
}

// NodeStatus is the per-step status within a dag-run snapshot.
type NodeStatus struct {
	Name        string      `json:"name"`
	StatusLabel StatusLabel `json:"statusLabel"`
}
