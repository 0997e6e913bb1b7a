package service

import (
	"context"
	"time"
)

type ContentCounterInterface interface {
	Count(ctx context.Context) (int64, error)
}

type LedgerCounterInterface interface {
	TotalVerified(ctx context.Context) (uint64, error)
}

// Stats are dashboard totals. OnChainTotal is best-effort: when the
// ledger cannot be queried it is zero and OnChainAvailable is false.
type Stats struct {
	RecordedTotal    int64  `json:"recorded_total"`
	OnChainTotal     uint64 `json:"on_chain_total"`
	OnChainAvailable bool   `json:"on_chain_available"`
}

type StatsService struct {
	counter ContentCounterInterface
	ledger  LedgerCounterInterface
	timeout time.Duration
}

func NewStatsService(counter ContentCounterInterface, ledgerCounter LedgerCounterInterface) *StatsService {
	return &StatsService{
		counter: counter,
		ledger:  ledgerCounter,
		timeout: 10 * time.Second,
	}
}

// Totals reports the persisted record count and, when reachable, the
// on-chain verified total
func (s *StatsService) Totals(ctx context.Context) (*Stats, error) {
	recorded, err := s.counter.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{RecordedTotal: recorded}

	ledgerCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if total, err := s.ledger.TotalVerified(ledgerCtx); err == nil {
		stats.OnChainTotal = total
		stats.OnChainAvailable = true
	}

	return stats, nil
}
