// Package client maps validated workflow specifications onto the
// orchestration engine's HTTP API.
//
// A Client is bound to a base URL and a target Dag name at construction and
// performs exactly one wire call per operation: PostDag, GetDagSpec,
// StartDagRun, GetDagRunStatus, DeleteDag. It never retries or backs off;
// connectivity concerns belong to the transport behind the Doer interface,
// and polling for run completion belongs to the caller.
//
// Engine-reported failures are decoded into typed errors (ConflictError,
// NotFoundError); transport failures are wrapped in TransportError and
// surfaced unchanged. A not-found on DeleteDag is treated as success.
package client
