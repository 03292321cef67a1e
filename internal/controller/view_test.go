package controller

import "msgrisk/internal/render"

// fakeView records the latest value of every binding call.
type fakeView struct {
	text    map[string]string
	visible map[string]bool
	width   map[string]float64
	class   map[string]string
	enabled map[string]bool
	items   map[string][]render.Reason
	focused string
	calls   int
}

func newFakeView() *fakeView {
	return &fakeView{
		text:    map[string]string{},
		visible: map[string]bool{},
		width:   map[string]float64{},
		class:   map[string]string{},
		enabled: map[string]bool{},
		items:   map[string][]render.Reason{},
	}
}

func (v *fakeView) SetText(id, text string)             { v.calls++; v.text[id] = text }
func (v *fakeView) SetVisible(id string, visible bool)  { v.calls++; v.visible[id] = visible }
func (v *fakeView) SetWidth(id string, percent float64) { v.calls++; v.width[id] = percent }
func (v *fakeView) SetClass(id, class string)           { v.calls++; v.class[id] = class }
func (v *fakeView) SetEnabled(id string, enabled bool)  { v.calls++; v.enabled[id] = enabled }
func (v *fakeView) Focus(id string)                     { v.calls++; v.focused = id }

func (v *fakeView) SetItems(id string, items []render.Reason) {
	v.calls++
	v.items[id] = append([]render.Reason(nil), items...)
}
