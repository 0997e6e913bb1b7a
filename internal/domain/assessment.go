package domain

// Confidence is the step-mapped confidence level of an assessment
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// MethodResult is the score produced by one analysis method in a scoring run
type MethodResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Assessment is the aggregated outcome of one scoring run. It is never
// persisted as a whole; only the score is embedded in the content record.
type Assessment struct {
	Score      int            `json:"ai_verification_score"`
	Confidence Confidence     `json:"confidence_level"`
	Narrative  string         `json:"analysis"`
	Methods    []MethodResult `json:"detection_methods"`
	Threats    []string       `json:"threat_indicators,omitempty"`
}
