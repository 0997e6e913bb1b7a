// Package analysis scores content authenticity. The heuristic Analyzer is the
// default implementation; remote and rekognition subpackages provide external
// detection capabilities behind the same interface.
package analysis

import (
	"context"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

// Assessor produces an authenticity assessment for raw content bytes.
// Implementations must never panic on arbitrary input; they may fail, in
// which case the caller substitutes DefaultAssessment.
type Assessor interface {
	Assess(ctx context.Context, data []byte, kind domain.ContentKind) (*domain.Assessment, error)
}
