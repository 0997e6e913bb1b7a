// Package rekognition implements a detection capability on AWS Rekognition
// moderation analysis. Manipulated or generated media tends to trip
// moderation models; label confidences are folded into the shared aggregate
// mapping so verdicts stay comparable with the heuristic analyzer.
package rekognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/imthegoodboy/veristamp/internal/analysis"
	"github.com/imthegoodboy/veristamp/internal/domain"
)

const (
	// maxImageSize is the maximum image size supported by the Rekognition
	// bytes API (5MB)
	maxImageSize = 5 * 1024 * 1024

	// minConfidence filters out low-certainty moderation labels
	minConfidence = 50.0
)

const (
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"
)

// ErrUnsupportedImage indicates Rekognition could not process the bytes
var ErrUnsupportedImage = errors.New("rekognition: unsupported image")

// Config holds the detector configuration
type Config struct {
	Region string
}

// Detector implements analysis.Assessor using DetectModerationLabels.
// Rekognition only accepts still images; video and text fall through to the
// configured fallback assessor.
type Detector struct {
	client   *rekognition.Client
	fallback analysis.Assessor
}

var _ analysis.Assessor = (*Detector)(nil)

// NewDetector creates a Rekognition detector using the AWS default credential
// chain
func NewDetector(ctx context.Context, cfg Config, fallback analysis.Assessor) (*Detector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Detector{
		client:   rekognition.NewFromConfig(awsCfg),
		fallback: fallback,
	}, nil
}

// Assess scores an image via moderation labels, or delegates to the fallback
// for kinds Rekognition cannot process
func (d *Detector) Assess(ctx context.Context, data []byte, kind domain.ContentKind) (*domain.Assessment, error) {
	if kind != domain.KindImage {
		return d.fallback.Assess(ctx, data, kind)
	}
	if len(data) == 0 || len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedImage, len(data))
	}

	out, err := d.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: data},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeInvalidImageFormat, errCodeImageTooLarge:
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, apiErr.ErrorCode())
			}
		}
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}

	return analysis.Aggregate(scoreLabels(out.ModerationLabels)), nil
}

// scoreLabels converts moderation output into method results. A clean image
// yields two full-score methods; each confident label pulls the score down.
func scoreLabels(labels []types.ModerationLabel) []domain.MethodResult {
	maxConf := 0.0
	for _, l := range labels {
		if l.Confidence != nil && float64(*l.Confidence) > maxConf {
			maxConf = float64(*l.Confidence)
		}
	}

	confidenceScore := 100 - int(maxConf)
	densityScore := 100 - 10*len(labels)
	if confidenceScore < 0 {
		confidenceScore = 0
	}
	if densityScore < 0 {
		densityScore = 0
	}

	return []domain.MethodResult{
		{Name: "Moderation Confidence", Score: confidenceScore},
		{Name: "Label Density", Score: densityScore},
	}
}
