// Package integrity provides data-quality checks over the pipeline's output.
//
// Unlike the 'etl' package which produces the consolidated data, this package
// validates what a finished run left behind: the live schema, the row counts
// and the input files the next run will need.
//
// # Checks Provided
//
//   - Schema: Verifies that the consolidated and monitoring tables carry every
//     column their models declare (a missing table reports all columns missing).
//   - Counts: Verifies consolidated key uniqueness and compares the live row
//     count against registros_validos of the latest successful run.
//   - Sources: Verifies that every configured source file exists on disk.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/counts : Runs the counts check.
//   - GET /integrity/sources : Runs the sources check.
package integrity
