package analysis

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

// Heuristic constants. These are tuned values with no stated derivation;
// treat them as configuration, not as knobs to improve.
const (
	metadataBase       = 80
	smallSizeThreshold = 1000
	largeSizeThreshold = 50_000_000

	entropySampleSize = 10_000
	entropyMaxBits    = 8.0

	patternBase        = 75
	patternSampleSize  = 5_000
	longRunThreshold   = 50
	mediumRunThreshold = 20
	headerProbeSize    = 10

	statsSampleSize = 8_000
	statsBase       = 70.0
	statsSpread     = 30.0
)

// Method names, in the order they run
const (
	MethodMetadata    = "Metadata Analysis"
	MethodEntropy     = "Entropy Analysis"
	MethodPattern     = "Pattern Detection"
	MethodStatistical = "Statistical Analysis"
)

// Analyzer scores content with four independent structural heuristics.
// Each method adds a small symmetric jitter so edge-adjacent inputs do not
// produce perfectly reproducible scores; the jitter source is seeded so tests
// can pin it and assert ranges.
type Analyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Assessor = (*Analyzer)(nil)

// NewAnalyzer creates an Analyzer. A zero seed uses the current time.
func NewAnalyzer(seed int64) *Analyzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Analyzer{rng: rand.New(rand.NewSource(seed))}
}

// Assess runs the four analysis methods and aggregates their scores.
// It never fails on well-formed byte input.
func (a *Analyzer) Assess(_ context.Context, data []byte, kind domain.ContentKind) (*domain.Assessment, error) {
	methods := []domain.MethodResult{
		{Name: MethodMetadata, Score: a.metadataScore(len(data), kind)},
		{Name: MethodEntropy, Score: a.entropyScore(data)},
		{Name: MethodPattern, Score: a.patternScore(data, kind)},
		{Name: MethodStatistical, Score: a.statisticalScore(data)},
	}
	return Aggregate(methods), nil
}

// metadataScore penalizes byte-length outliers and unknown content kinds.
// Text is exempt from the kind penalty: it has no binary signature to check.
func (a *Analyzer) metadataScore(size int, kind domain.ContentKind) int {
	score := metadataBase

	if size < smallSizeThreshold {
		score -= 20
	} else if size > largeSizeThreshold {
		score -= 10
	}

	if kind != domain.KindImage && kind != domain.KindVideo && kind != domain.KindText {
		score -= 15
	}

	return clamp(score+a.jitter(10, -5), 20, 100)
}

// entropyScore maps Shannon entropy of a bounded prefix sample onto 0-100.
// Heavily compressed or encrypted regions shift entropy away from the
// natural-media distribution.
func (a *Analyzer) entropyScore(data []byte) int {
	sample := min(len(data), entropySampleSize)

	var freq [256]int
	for _, b := range data[:sample] {
		freq[b]++
	}

	entropy := 0.0
	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(sample)
		entropy -= p * math.Log2(p)
	}

	score := int(entropy / entropyMaxBits * 100)
	return clamp(score+a.jitter(15, -7), 30, 100)
}

// patternScore penalizes long runs of identical bytes in a bounded prefix
// sample and, for images, grants a small bonus when header bytes are present.
func (a *Analyzer) patternScore(data []byte, kind domain.ContentKind) int {
	score := patternBase
	sample := min(len(data), patternSampleSize)

	run, longest := 0, 0
	for i := 1; i < sample; i++ {
		if data[i] == data[i-1] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	if longest > longRunThreshold {
		score -= 30
	} else if longest > mediumRunThreshold {
		score -= 15
	}

	if kind == domain.KindImage {
		sum := 0
		for _, b := range data[:min(len(data), headerProbeSize)] {
			sum += int(b)
		}
		if sum > 0 {
			score += 10
		}
	}

	return clamp(score+a.jitter(12, -6), 20, 100)
}

// statisticalScore maps the normalized standard deviation of byte values over
// a bounded prefix sample into a 70±30 band.
func (a *Analyzer) statisticalScore(data []byte) int {
	sample := min(len(data), statsSampleSize)
	if sample == 0 {
		return clamp(int(statsBase)+a.jitter(10, -5), 25, 100)
	}

	var sum float64
	for _, b := range data[:sample] {
		sum += float64(b)
	}
	mean := sum / float64(sample)

	var variance float64
	for _, b := range data[:sample] {
		d := float64(b) - mean
		variance += d * d
	}
	variance /= float64(sample)
	stdDev := math.Sqrt(variance)

	score := statsBase + (stdDev/128.0)*statsSpread
	return clamp(int(score)+a.jitter(10, -5), 25, 100)
}

// jitter returns a value in [offset, offset+spread)
func (a *Analyzer) jitter(spread, offset int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Intn(spread) + offset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
