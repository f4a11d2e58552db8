// Package etl implements the student records consolidation feature.
//
// One run ingests three per-entity sources, each in its own format:
//  1. Students (CSV): the identity source; every student survives into the output.
//  2. Grades (JSON): per-student scores, clamped into the valid range.
//  3. Enrollments (XML): per-student enrollment status.
//
// The run normalizes each source, left-joins grades and enrollments onto the
// student roster via the `core/reconcile` engine, persists the consolidated
// table, writes a flat CSV export, and always records exactly one monitoring
// row describing the outcome.
//
// # Components
//
//   - Service: Orchestrates runs and serves reads from the consolidated table.
//   - Handler: Exposes HTTP endpoints for runs and consolidated data.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /etl/runs             : Run history, newest first.
//   - GET  /etl/runs/latest      : Monitor entry of the most recent run.
//   - POST /etl/runs             : Execute a run synchronously (API key).
//   - GET  /etl/students         : Page through consolidated rows.
//   - GET  /etl/students/:id     : One consolidated row by student key.
package etl
