package controller

import "msgrisk/internal/scoring"

// Phase is the controller's lifecycle position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// UIState is the single active UI state. Result is set only in PhaseResult;
// Clear leaves PhaseResult for PhaseIdle. A failed analysis reports PhaseError from Complete and then rests in
// PhaseIdle with Message holding the notification text.
type UIState struct {
	Phase   Phase
	Result  *scoring.AnalysisResult
	Message string
}

// Pending is a submission waiting for the scoring call.
type Pending struct {
	Seq     uint64
	Request scoring.AnalysisRequest
}

// Outcome is the resolution of a Pending.
type Outcome struct {
	Seq    uint64
	Result *scoring.AnalysisResult
	Err    error
}
