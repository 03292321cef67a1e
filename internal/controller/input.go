package controller

import "strings"

// Input is the editable message text. Trimming applies to validation only;
// the stored text is never rewritten except by Clear.
type Input struct {
	text string
}

// Text returns the text as entered.
func (i *Input) Text() string { return i.text }

// SetText replaces the text.
func (i *Input) SetText(s string) { i.text = s }

// Clear empties the text.
func (i *Input) Clear() { i.text = "" }

// Trimmed returns the text without leading and trailing whitespace.
func (i *Input) Trimmed() string { return strings.TrimSpace(i.text) }
