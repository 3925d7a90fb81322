package pkglog

import "context"

type runIDContextKey struct{}

// GetRunID returns the run ID stored in the context.
//
// The application sets this value once at startup so every record of a single
// pipeline run can be grouped together.
func GetRunID(ctx context.Context) string {
	id, ok := ctx.Value(runIDContextKey{}).(string)
	if !ok {
		return "[invalid_run_id]"
	}
	return id
}

// SetRunID stores a run ID into the context.
func SetRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDContextKey{}, id)
}
