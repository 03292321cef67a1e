package controller

import "msgrisk/internal/render"

// Element ids bound by the view.
const (
	ElemInput           = "messageInput"
	ElemSubmit          = "analyzeBtn"
	ElemResults         = "resultsSection"
	ElemLoading         = "loading"
	ElemCounter         = "scansToday"
	ElemTimestamp       = "timestamp"
	ElemRiskCard        = "riskCard"
	ElemRiskLevel       = "riskLevel"
	ElemRiskDescription = "riskDescription"
	ElemRecommendation  = "recommendation"
	ElemScoreValue      = "scoreValue"
	ElemScoreCircle     = "scoreCircle"
	ElemReasons         = "reasonsList"
)

// BarID is the width element for a category bar.
func BarID(category string) string { return category + "Progress" }

// CountID is the label element for a category bar.
func CountID(category string) string { return category + "Count" }

// Binding is the set of view capabilities the controller drives. The
// terminal UI implements it over its own widgets; tests record calls.
type Binding interface {
	SetText(id, text string)
	SetVisible(id string, visible bool)
	// SetWidth sets a percentage width in [0, 100].
	SetWidth(id string, percent float64)
	SetClass(id, class string)
	SetEnabled(id string, enabled bool)
	SetItems(id string, items []render.Reason)
	Focus(id string)
}
