package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

// LogReporter writes pipeline events as structured log records.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter returns a reporter that logs through logger, or through the
// default logger when logger is nil.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(ctx context.Context, ev entity.Event) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{"stage", string(ev.Stage)}
	if ev.File != "" {
		attrs = append(attrs, "dataset", ev.File)
	}
	if ev.Path != "" {
		attrs = append(attrs, "path", ev.Path)
	}

	switch ev.Kind {
	case entity.EventRunStarted:
		logger.InfoContext(ctx, "pipeline started", append(attrs, "datasets", ev.Total)...)
	case entity.EventRunFinished:
		logger.InfoContext(ctx, "pipeline finished", append(attrs, "records", ev.Count, "chunks", ev.Total)...)
	case entity.EventFileState:
		r.reportState(ctx, logger, ev, attrs)
	case entity.EventDownloadStarted:
		logger.InfoContext(ctx, "downloading file", attrs...)
	case entity.EventDownloadProgress:
		logger.DebugContext(ctx, "download progress", append(attrs, "bytes", ev.Bytes, "size", ev.Size, "percent", percent(ev.Bytes, ev.Size))...)
	case entity.EventDownloadFinished:
		logger.InfoContext(ctx, "download finished", append(attrs, "bytes", ev.Bytes)...)
	case entity.EventDownloadFailed:
		logger.WarnContext(ctx, "download failed, trying once more", append(attrs, "error", ev.Err)...)
	case entity.EventFileDeleted:
		logger.WarnContext(ctx, "deleted file that was not intact", attrs...)
	case entity.EventExtractStarted:
		logger.InfoContext(ctx, "reading dataset", attrs...)
	case entity.EventExtractFinished:
		logger.InfoContext(ctx, "dataset read", append(attrs, "rows", ev.Count, "unique_total", ev.Total)...)
	case entity.EventShortRow:
		logger.WarnContext(ctx, "row is missing fields, using empty values", append(attrs, "line", ev.Index, "fields", ev.Count)...)
	case entity.EventShuffled:
		logger.InfoContext(ctx, "ready to write output files", append(attrs, "records", ev.Count)...)
	case entity.EventChunkWritten:
		logger.InfoContext(ctx, fmt.Sprintf("wrote file %d of %d", ev.Index+1, ev.Total), append(attrs, "rows", ev.Count)...)
	case entity.EventFailed:
		logger.ErrorContext(ctx, "pipeline stage failed", append(attrs, "error", ev.Err)...)
	default:
		logger.InfoContext(ctx, "pipeline event", append(attrs, "kind", string(ev.Kind))...)
	}
}

func (r *LogReporter) reportState(ctx context.Context, logger *slog.Logger, ev entity.Event, attrs []any) {
	attrs = append(attrs, "state", string(ev.State))

	switch ev.State {
	case entity.FileStateMissing:
		logger.InfoContext(ctx, "file not present, need to download", attrs...)
	case entity.FileStatePresent:
		logger.InfoContext(ctx, "file already present, not downloading", attrs...)
	case entity.FileStateIntact:
		logger.InfoContext(ctx, "file is intact", append(attrs, "md5", ev.Actual)...)
	case entity.FileStateCorrupt:
		logger.WarnContext(ctx, "file is not intact, need to download again", append(attrs, "expected_md5", ev.Expected, "actual_md5", ev.Actual)...)
	}
}

func percent(n, total int64) float64 {
	if total <= 0 {
		return -1
	}
	return float64(n*10000/total) / 100
}
