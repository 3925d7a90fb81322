// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy:
//   - String IDs (UUIDv7) tag a pipeline run in the logs.
//   - Numeric IDs (Snowflake) name temporary download files.
package pkguid
