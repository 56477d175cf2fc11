package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Last persistence failure, shown in the status bar until the next
	// successful change.
	SaveErr error
}

// ContentHeight is the number of lines left for the active view after the
// header and status bar.
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 5 {
		return 5
	}
	return h
}

// noteSave records the outcome of a persisted mutation.
func (s *SharedState) noteSave(err error) {
	s.SaveErr = err
}
