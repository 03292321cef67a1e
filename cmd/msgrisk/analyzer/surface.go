package analyzer

import (
	"sync"

	"msgrisk/internal/controller"
	"msgrisk/internal/render"
)

// Surface is the controller's view of the terminal: it records element
// state that View reads back when drawing. Input text and focus requests
// are queued for the Model to apply to its textarea.
type Surface struct {
	mu      sync.Mutex
	text    map[string]string
	visible map[string]bool
	width   map[string]float64
	class   map[string]string
	enabled map[string]bool
	items   map[string][]render.Reason

	pendingInput *string
	pendingFocus string
}

var _ controller.Binding = (*Surface)(nil)

// NewSurface returns an empty surface with every element enabled and
// hidden sections hidden.
func NewSurface() *Surface {
	return &Surface{
		text:    make(map[string]string),
		visible: make(map[string]bool),
		width:   make(map[string]float64),
		class:   make(map[string]string),
		enabled: make(map[string]bool),
		items:   make(map[string][]render.Reason),
	}
}

func (s *Surface) SetText(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == controller.ElemInput {
		s.pendingInput = &text
	}
	s.text[id] = text
}

func (s *Surface) SetVisible(id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[id] = visible
}

func (s *Surface) SetWidth(id string, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	s.width[id] = percent
}

func (s *Surface) SetClass(id, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.class[id] = class
}

func (s *Surface) SetEnabled(id string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled[id] = enabled
}

func (s *Surface) SetItems(id string, items []render.Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = append([]render.Reason(nil), items...)
}

func (s *Surface) Focus(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingFocus = id
}

// Text returns the text of id.
func (s *Surface) Text(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text[id]
}

// Visible reports whether id is shown.
func (s *Surface) Visible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible[id]
}

// Width returns the percentage width of id.
func (s *Surface) Width(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width[id]
}

// Class returns the class of id.
func (s *Surface) Class(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.class[id]
}

// Enabled reports whether id accepts input. Unset elements are enabled.
func (s *Surface) Enabled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enabled[id]
	return !ok || e
}

// Items returns the list items of id.
func (s *Surface) Items(id string) []render.Reason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]render.Reason(nil), s.items[id]...)
}

// takePending returns and clears queued input and focus requests.
func (s *Surface) takePending() (input *string, focus string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	input, focus = s.pendingInput, s.pendingFocus
	s.pendingInput, s.pendingFocus = nil, ""
	return input, focus
}
