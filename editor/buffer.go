package editor

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lixenwraith/flexterm/geom"
	"github.com/mattn/go-runewidth"
)

// Caret is a position in the buffer; Col counts runes
type Caret struct {
	Line int
	Col  int
}

// Before reports whether c sorts before o
func (c Caret) Before(o Caret) bool {
	return c.Line < o.Line || (c.Line == o.Line && c.Col < o.Col)
}

// Selection spans from Anchor (where it started) to Head (the caret)
type Selection struct {
	Anchor Caret
	Head   Caret
}

// Ordered returns the selection bounds with start before end
func (s Selection) Ordered() (start, end Caret) {
	if s.Head.Before(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// IsEmpty reports whether anchor and head coincide
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Buffer is the text state of one editor, owned by application state
// Treat as a value: mutate only a Clone
type Buffer struct {
	Lines     []string
	Caret     Caret
	Scroll    geom.Position // Col: first visible rune, Row: first visible line
	Selection *Selection
}

// NewBuffer creates a buffer holding text with the caret at the start
func NewBuffer(text string) Buffer {
	return Buffer{Lines: splitLines(text)}
}

// splitLines splits on newlines, always returning at least one line
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// Clone returns a deep copy safe to mutate
func (b Buffer) Clone() Buffer {
	c := b
	c.Lines = slices.Clone(b.Lines)
	if len(c.Lines) == 0 {
		c.Lines = []string{""}
	}
	if b.Selection != nil {
		sel := *b.Selection
		c.Selection = &sel
	}
	return c
}

// Equal reports whether two buffers have the same content, caret, scroll and selection
func (b Buffer) Equal(o Buffer) bool {
	if b.Caret != o.Caret || b.Scroll != o.Scroll || !slices.Equal(b.Lines, o.Lines) {
		return false
	}
	if (b.Selection == nil) != (o.Selection == nil) {
		return false
	}
	return b.Selection == nil || *b.Selection == *o.Selection
}

// Value returns all lines joined with newlines
func (b Buffer) Value() string {
	return strings.Join(b.Lines, "\n")
}

// LineCount returns number of lines
func (b Buffer) LineCount() int {
	return max(len(b.Lines), 1)
}

// Line returns line i, empty when out of range
func (b Buffer) Line(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// CurrentLine returns the caret's line
func (b Buffer) CurrentLine() string {
	return b.Line(b.Caret.Line)
}

// SetValue replaces all content and resets caret, scroll and selection
func (b *Buffer) SetValue(s string) {
	b.Lines = splitLines(s)
	b.Caret = Caret{}
	b.Scroll = geom.Position{}
	b.Selection = nil
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	b.SetValue("")
}

// clamp keeps the caret inside the content
func (b *Buffer) clamp() {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	b.Caret.Line = min(max(b.Caret.Line, 0), len(b.Lines)-1)
	b.Caret.Col = min(max(b.Caret.Col, 0), runeLen(b.Lines[b.Caret.Line]))
}

func runeLen(s string) int {
	return len([]rune(s))
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// --- Selection ---

// HasSelection reports whether a non-empty selection exists
func (b Buffer) HasSelection() bool {
	return b.Selection != nil && !b.Selection.IsEmpty()
}

// SelectedText returns the selected text, empty without a selection
func (b Buffer) SelectedText() string {
	if !b.HasSelection() {
		return ""
	}
	start, end := b.Selection.Ordered()
	if start.Line == end.Line {
		line := []rune(b.Line(start.Line))
		return string(line[start.Col:end.Col])
	}
	parts := []string{string([]rune(b.Line(start.Line))[start.Col:])}
	for i := start.Line + 1; i < end.Line; i++ {
		parts = append(parts, b.Lines[i])
	}
	parts = append(parts, string([]rune(b.Line(end.Line))[:end.Col]))
	return strings.Join(parts, "\n")
}

// Selected reports whether the rune at line, col lies inside the selection
func (b Buffer) Selected(line, col int) bool {
	if !b.HasSelection() {
		return false
	}
	start, end := b.Selection.Ordered()
	p := Caret{Line: line, Col: col}
	return !p.Before(start) && p.Before(end)
}

// ClearSelection drops the selection
func (b *Buffer) ClearSelection() {
	b.Selection = nil
}

// SelectAll selects the whole content, caret at the end
func (b *Buffer) SelectAll() {
	b.MoveToEnd()
	b.Selection = &Selection{Head: b.Caret}
}

// extendSelection anchors a selection at from if none exists and moves its head to the caret
func (b *Buffer) extendSelection(from Caret) {
	if b.Selection == nil {
		b.Selection = &Selection{Anchor: from}
	}
	b.Selection.Head = b.Caret
}

// DeleteSelection removes the selected text, returns false without a selection
func (b *Buffer) DeleteSelection() bool {
	if !b.HasSelection() {
		b.Selection = nil
		return false
	}
	start, end := b.Selection.Ordered()
	head := []rune(b.Line(start.Line))[:start.Col]
	tail := []rune(b.Line(end.Line))[end.Col:]
	merged := string(head) + string(tail)
	b.Lines = slices.Replace(b.Lines, start.Line, end.Line+1, merged)
	b.Caret = start
	b.Selection = nil
	return true
}

// --- Character insertion ---

// Insert adds a rune at the caret, replacing any selection
func (b *Buffer) Insert(r rune) {
	b.DeleteSelection()
	b.clamp()
	line := []rune(b.Lines[b.Caret.Line])
	line = slices.Insert(line, b.Caret.Col, r)
	b.Lines[b.Caret.Line] = string(line)
	b.Caret.Col++
}

// InsertString adds s at the caret, splitting lines on newlines
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		if r == '\n' {
			b.InsertNewline()
		} else {
			b.Insert(r)
		}
	}
}

// InsertNewline splits the current line at the caret
func (b *Buffer) InsertNewline() {
	b.DeleteSelection()
	b.clamp()
	runes := []rune(b.Lines[b.Caret.Line])
	before := string(runes[:b.Caret.Col])
	after := string(runes[b.Caret.Col:])

	b.Lines[b.Caret.Line] = before
	b.Lines = slices.Insert(b.Lines, b.Caret.Line+1, after)
	b.Caret.Line++
	b.Caret.Col = 0
}

// --- Character deletion ---

// DeleteBackward deletes the selection or the rune before the caret, merging lines at column 0
func (b *Buffer) DeleteBackward() bool {
	if b.DeleteSelection() {
		return true
	}
	b.clamp()
	if b.Caret.Col > 0 {
		line := []rune(b.Lines[b.Caret.Line])
		line = slices.Delete(line, b.Caret.Col-1, b.Caret.Col)
		b.Lines[b.Caret.Line] = string(line)
		b.Caret.Col--
		return true
	}
	if b.Caret.Line > 0 {
		prev := b.Lines[b.Caret.Line-1]
		b.Lines[b.Caret.Line-1] = prev + b.Lines[b.Caret.Line]
		b.Lines = slices.Delete(b.Lines, b.Caret.Line, b.Caret.Line+1)
		b.Caret.Line--
		b.Caret.Col = runeLen(prev)
		return true
	}
	return false
}

// DeleteForward deletes the selection or the rune at the caret, merging the next line at line end
func (b *Buffer) DeleteForward() bool {
	if b.DeleteSelection() {
		return true
	}
	b.clamp()
	line := []rune(b.Lines[b.Caret.Line])
	if b.Caret.Col < len(line) {
		line = slices.Delete(line, b.Caret.Col, b.Caret.Col+1)
		b.Lines[b.Caret.Line] = string(line)
		return true
	}
	if b.Caret.Line < len(b.Lines)-1 {
		b.Lines[b.Caret.Line] += b.Lines[b.Caret.Line+1]
		b.Lines = slices.Delete(b.Lines, b.Caret.Line+1, b.Caret.Line+2)
		return true
	}
	return false
}

// --- Word deletion ---

// DeleteWordBackward deletes the word before the caret
func (b *Buffer) DeleteWordBackward() bool {
	if b.DeleteSelection() {
		return true
	}
	b.clamp()
	if b.Caret.Col == 0 {
		return b.DeleteBackward()
	}

	line := []rune(b.Lines[b.Caret.Line])
	end := b.Caret.Col
	for end > 0 && !isWordChar(line[end-1]) {
		end--
	}
	start := end
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	if start == b.Caret.Col {
		start = b.Caret.Col - 1
	}

	line = slices.Delete(line, start, b.Caret.Col)
	b.Lines[b.Caret.Line] = string(line)
	b.Caret.Col = start
	return true
}

// DeleteWordForward deletes the word after the caret
func (b *Buffer) DeleteWordForward() bool {
	if b.DeleteSelection() {
		return true
	}
	b.clamp()
	line := []rune(b.Lines[b.Caret.Line])
	if b.Caret.Col >= len(line) {
		return b.DeleteForward()
	}

	start := b.Caret.Col
	end := start
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	for end < len(line) && !isWordChar(line[end]) {
		end++
	}
	if end == start {
		end = start + 1
	}

	line = slices.Delete(line, start, end)
	b.Lines[b.Caret.Line] = string(line)
	return true
}

// --- Line deletion ---

// DeleteToEndOfLine kills from the caret to line end, or joins the next line at line end
func (b *Buffer) DeleteToEndOfLine() bool {
	b.ClearSelection()
	b.clamp()
	line := []rune(b.Lines[b.Caret.Line])
	if b.Caret.Col < len(line) {
		b.Lines[b.Caret.Line] = string(line[:b.Caret.Col])
		return true
	}
	return b.DeleteForward()
}

// DeleteToStartOfLine kills from line start to the caret
func (b *Buffer) DeleteToStartOfLine() bool {
	b.ClearSelection()
	b.clamp()
	if b.Caret.Col == 0 {
		return false
	}
	line := []rune(b.Lines[b.Caret.Line])
	b.Lines[b.Caret.Line] = string(line[b.Caret.Col:])
	b.Caret.Col = 0
	return true
}

// --- Navigation ---

// MoveUp moves to the previous line
func (b *Buffer) MoveUp() {
	if b.Caret.Line > 0 {
		b.Caret.Line--
		b.clamp()
	}
}

// MoveDown moves to the next line
func (b *Buffer) MoveDown() {
	if b.Caret.Line < len(b.Lines)-1 {
		b.Caret.Line++
		b.clamp()
	}
}

// MoveLeft moves one rune left, wrapping to the previous line
func (b *Buffer) MoveLeft() {
	b.clamp()
	if b.Caret.Col > 0 {
		b.Caret.Col--
	} else if b.Caret.Line > 0 {
		b.Caret.Line--
		b.Caret.Col = runeLen(b.Lines[b.Caret.Line])
	}
}

// MoveRight moves one rune right, wrapping to the next line
func (b *Buffer) MoveRight() {
	b.clamp()
	if b.Caret.Col < runeLen(b.Lines[b.Caret.Line]) {
		b.Caret.Col++
	} else if b.Caret.Line < len(b.Lines)-1 {
		b.Caret.Line++
		b.Caret.Col = 0
	}
}

// MoveWordLeft moves to the previous word start
func (b *Buffer) MoveWordLeft() {
	b.clamp()
	if b.Caret.Col == 0 {
		b.MoveLeft()
		return
	}
	line := []rune(b.Lines[b.Caret.Line])
	for b.Caret.Col > 0 && !isWordChar(line[b.Caret.Col-1]) {
		b.Caret.Col--
	}
	for b.Caret.Col > 0 && isWordChar(line[b.Caret.Col-1]) {
		b.Caret.Col--
	}
}

// MoveWordRight moves past the current word and following separators
func (b *Buffer) MoveWordRight() {
	b.clamp()
	line := []rune(b.Lines[b.Caret.Line])
	if b.Caret.Col >= len(line) {
		b.MoveRight()
		return
	}
	for b.Caret.Col < len(line) && isWordChar(line[b.Caret.Col]) {
		b.Caret.Col++
	}
	for b.Caret.Col < len(line) && !isWordChar(line[b.Caret.Col]) {
		b.Caret.Col++
	}
}

// MoveToLineStart moves to column 0
func (b *Buffer) MoveToLineStart() {
	b.clamp()
	b.Caret.Col = 0
}

// MoveToLineEnd moves past the last rune of the line
func (b *Buffer) MoveToLineEnd() {
	b.clamp()
	b.Caret.Col = runeLen(b.Lines[b.Caret.Line])
}

// MoveToStart moves to the start of the document
func (b *Buffer) MoveToStart() {
	b.Caret = Caret{}
}

// MoveToEnd moves to the end of the document
func (b *Buffer) MoveToEnd() {
	b.clamp()
	b.Caret.Line = len(b.Lines) - 1
	b.Caret.Col = runeLen(b.Lines[b.Caret.Line])
}

// PageUp moves up by half the viewport height, at least one line
func (b *Buffer) PageUp(viewportH int) {
	b.Caret.Line -= max(viewportH/2, 1)
	b.clamp()
}

// PageDown moves down by half the viewport height, at least one line
func (b *Buffer) PageDown(viewportH int) {
	b.Caret.Line += max(viewportH/2, 1)
	b.clamp()
}

// AdjustScroll moves the scroll offset so the caret is inside a w x h viewport
// Width is measured in display cells
func (b *Buffer) AdjustScroll(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	if b.Caret.Line < b.Scroll.Row {
		b.Scroll.Row = b.Caret.Line
	}
	if b.Caret.Line >= b.Scroll.Row+h {
		b.Scroll.Row = b.Caret.Line - h + 1
	}
	b.Scroll.Row = max(b.Scroll.Row, 0)

	// w is in display cells, so wide runes take two columns
	runes := []rune(b.Line(b.Caret.Line))
	col := min(max(b.Caret.Col, 0), len(runes))
	if col < b.Scroll.Col {
		b.Scroll.Col = col
	}
	b.Scroll.Col = max(b.Scroll.Col, 0)
	for b.Scroll.Col < col && runewidth.StringWidth(string(runes[b.Scroll.Col:col])) >= w {
		b.Scroll.Col++
	}
}
