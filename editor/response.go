package editor

// Change classifies what an applied event modified
type Change uint8

const (
	ChangeCaret   Change = iota // caret, scroll or selection only
	ChangeContent               // text changed
)

func (c Change) String() string {
	if c == ChangeContent {
		return "content"
	}
	return "caret"
}

// ApplyResponse is Applied or NotApplied
type ApplyResponse interface {
	applyResponse()
}

// Applied carries the buffer after the event
type Applied struct {
	Buffer Buffer
	Change Change
}

// NotApplied means the event was not recognized or changed nothing
type NotApplied struct{}

func (Applied) applyResponse()    {}
func (NotApplied) applyResponse() {}
