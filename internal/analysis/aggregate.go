package analysis

import (
	"github.com/imthegoodboy/veristamp/internal/domain"
)

// Confidence and threat breakpoints on the aggregate score
const (
	breakpointAuthentic  = 85
	breakpointMostly     = 70
	breakpointSuspicious = 50
)

// Narratives per breakpoint band
const (
	narrativeAuthentic = "Content appears authentic. All validation methods passed with high confidence."
	narrativeMostly    = "Content appears mostly authentic with minor artifacts that may be natural compression artifacts."
	narrativeReview    = "Content shows some suspicious patterns. Manual review recommended."
	narrativeFake      = "Content shows strong indicators of manipulation or AI generation. High probability of fake content."
	narrativeDefault   = "Content analysis unavailable; default moderate score applied."
)

// Threat indicator texts
const (
	threatManipulation    = "High probability of manipulation detected"
	threatAnomalous       = "Anomalous data patterns found"
	threatInconsistencies = "Minor inconsistencies detected"
)

// DefaultScore is the moderate score substituted when no detection capability
// is reachable
const DefaultScore = 85

// Aggregate folds per-method scores into an assessment. The aggregate is the
// integer floor of the mean. Both extremes of the scale map to high
// confidence: a very low aggregate is a confident fake verdict, not an
// uncertain one.
func Aggregate(methods []domain.MethodResult) *domain.Assessment {
	total := 0
	for _, m := range methods {
		total += m.Score
	}

	score := 0
	if len(methods) > 0 {
		score = total / len(methods)
	}

	out := &domain.Assessment{
		Score:   score,
		Methods: methods,
	}

	switch {
	case score >= breakpointAuthentic:
		out.Confidence = domain.ConfidenceHigh
		out.Narrative = narrativeAuthentic
	case score >= breakpointMostly:
		out.Confidence = domain.ConfidenceHigh
		out.Narrative = narrativeMostly
	case score >= breakpointSuspicious:
		out.Confidence = domain.ConfidenceMedium
		out.Narrative = narrativeReview
	default:
		out.Confidence = domain.ConfidenceHigh
		out.Narrative = narrativeFake
	}

	if score < breakpointSuspicious {
		out.Threats = []string{threatManipulation, threatAnomalous}
	} else if score < breakpointMostly {
		out.Threats = []string{threatInconsistencies}
	}

	return out
}

// DefaultAssessment is the documented fallback when the detection capability
// is absent or unreachable
func DefaultAssessment() *domain.Assessment {
	return &domain.Assessment{
		Score:      DefaultScore,
		Confidence: domain.ConfidenceHigh,
		Narrative:  narrativeDefault,
	}
}
