package entity

type FileState string

const (
	FileStateMissing FileState = "MISSING"
	FileStatePresent FileState = "PRESENT"
	FileStateIntact  FileState = "INTACT"
	FileStateCorrupt FileState = "CORRUPT"
)

type Stage string

const (
	StageRun     Stage = "run"
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageShuffle Stage = "shuffle"
	StageWrite   Stage = "write"
)

type EventKind string

const (
	EventRunStarted       EventKind = "run_started"
	EventRunFinished      EventKind = "run_finished"
	EventFileState        EventKind = "file_state"
	EventDownloadStarted  EventKind = "download_started"
	EventDownloadProgress EventKind = "download_progress"
	EventDownloadFinished EventKind = "download_finished"
	EventDownloadFailed   EventKind = "download_failed"
	EventFileDeleted      EventKind = "file_deleted"
	EventExtractStarted   EventKind = "extract_started"
	EventExtractFinished  EventKind = "extract_finished"
	EventShortRow         EventKind = "short_row"
	EventShuffled         EventKind = "shuffled"
	EventChunkWritten     EventKind = "chunk_written"
	EventFailed           EventKind = "failed"
)
