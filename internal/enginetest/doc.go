// Package enginetest provides an in-process fake of the orchestration
// engine's HTTP API for integration tests.
//
// The fake honors the engine's contract as the client sees it:
//   - POST /dags rejects duplicate names with a conflict
//   - POST /dags/{name}/start honors singleton semantics
//   - GET /dag-runs/{id} reports running until the configured run delay has
//     elapsed, then a terminal label
//   - DELETE /dags/{name} answers not-found for unknown names
//
// Steps with an http executor are actually dispatched when the run starts,
// so tests can point them at a capturing endpoint and assert on the request
// the engine side would produce.
package enginetest
