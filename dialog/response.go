package dialog

// ApplyResponse is one of DialogChoice, UpdateEditorBuffer,
// SelectScrollResultsPanel or NoMatch
type ApplyResponse interface {
	applyResponse()
}

// DialogChoice means the user confirmed or cancelled
type DialogChoice struct {
	Choice Choice
}

// UpdateEditorBuffer carries the dialog buffer after its input changed
type UpdateEditorBuffer struct {
	Buffer Buffer
}

// SelectScrollResultsPanel means the result selection moved
type SelectScrollResultsPanel struct{}

// NoMatch means the event was not for the dialog
type NoMatch struct{}

func (DialogChoice) applyResponse()             {}
func (UpdateEditorBuffer) applyResponse()       {}
func (SelectScrollResultsPanel) applyResponse() {}
func (NoMatch) applyResponse()                  {}
