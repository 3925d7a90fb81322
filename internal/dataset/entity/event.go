package entity

// Event is a structured pipeline notification. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind  EventKind
	Stage Stage
	File  string
	Path  string
	State FileState

	Expected string
	Actual   string

	Index int
	Total int
	Count int64
	Bytes int64
	Size  int64

	Err error
}
