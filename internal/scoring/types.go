// Package scoring is the client side of the remote message-scoring contract:
// one JSON POST per analysis, answered by an AnalysisResult.
package scoring

// Risk classes returned by the service.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Categories reported in CategoryScores, in display order.
var Categories = []string{"urgent", "links", "financial", "threats"}

// AnalysisRequest is the request body.
type AnalysisRequest struct {
	Message string `json:"message"`
}

// AnalysisResult is the service's report. It is consumed read-only.
type AnalysisResult struct {
	Timestamp      string         `json:"timestamp"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"max_score"`
	RiskLevel      string         `json:"risk_level"`
	RiskClass      string         `json:"risk_class"`
	Recommendation string         `json:"recommendation"`
	CategoryScores map[string]int `json:"category_scores"`
	Reasons        []string       `json:"reasons"`
}
