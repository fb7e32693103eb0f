package ui

// FileStartMsg indicates a worker has begun analysing a file
type FileStartMsg struct {
	Path string
}

// FileResultMsg carries the finished outcome for one file. Block holds the
// fully rendered report (empty when the file had no silence); Err is set for
// per-file failures. Exactly one of the two is non-empty, or neither.
type FileResultMsg struct {
	Path    string
	Block   string
	Err     error
	Flagged bool
}

// AllCompleteMsg indicates every file has been analysed
type AllCompleteMsg struct{}
