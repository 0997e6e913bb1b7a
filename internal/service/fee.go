package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/imthegoodboy/veristamp/internal/ledger"
)

type FeeEstimatorInterface interface {
	EstimateFee(ctx context.Context) (*ledger.Fee, error)
}

const (
	feeCacheKey = "ledger_fee"
	feeCacheTTL = 30 * time.Second

	defaultFeeTimeout = 10 * time.Second
)

// FeeService estimates the cost of anchoring a record on the ledger.
// Estimates are cached briefly; when the ledger is unreachable the
// documented default estimate is returned instead of an error.
type FeeService struct {
	estimator FeeEstimatorInterface
	cache     *gocache.Cache
	timeout   time.Duration
}

func NewFeeService(estimator FeeEstimatorInterface) *FeeService {
	return &FeeService{
		estimator: estimator,
		cache:     gocache.New(feeCacheTTL, 2*feeCacheTTL),
		timeout:   defaultFeeTimeout,
	}
}

func (s *FeeService) WithTimeout(timeout time.Duration) *FeeService {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

// Estimate returns the current fee estimate. It has no side effects.
func (s *FeeService) Estimate(ctx context.Context) *ledger.Fee {
	if cached, found := s.cache.Get(feeCacheKey); found {
		if fee, ok := cached.(*ledger.Fee); ok {
			return fee
		}
	}

	estimateCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fee, err := s.estimator.EstimateFee(estimateCtx)
	if err != nil || fee == nil {
		fallback := ledger.DefaultFee
		return &fallback
	}

	s.cache.Set(feeCacheKey, fee, gocache.DefaultExpiration)
	return fee
}
