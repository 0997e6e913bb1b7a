package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Totals(t *testing.T) {
	t.Run("with reachable ledger", func(t *testing.T) {
		contentRepo := &MockContentRepository{}
		ledgerClient := &MockLedger{}

		contentRepo.On("Count", mock.Anything).Return(int64(42), nil)
		ledgerClient.On("TotalVerified", mock.Anything).Return(uint64(40), nil)

		svc := NewStatsService(contentRepo, ledgerClient)

		stats, err := svc.Totals(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), stats.RecordedTotal)
		assert.Equal(t, uint64(40), stats.OnChainTotal)
		assert.True(t, stats.OnChainAvailable)
	})

	t.Run("ledger unreachable", func(t *testing.T) {
		contentRepo := &MockContentRepository{}
		ledgerClient := &MockLedger{}

		contentRepo.On("Count", mock.Anything).Return(int64(42), nil)
		ledgerClient.On("TotalVerified", mock.Anything).
			Return(uint64(0), errors.New("rpc timeout"))

		svc := NewStatsService(contentRepo, ledgerClient)

		stats, err := svc.Totals(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), stats.RecordedTotal)
		assert.False(t, stats.OnChainAvailable)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		contentRepo := &MockContentRepository{}
		ledgerClient := &MockLedger{}

		contentRepo.On("Count", mock.Anything).
			Return(int64(0), errors.New("connection lost"))

		svc := NewStatsService(contentRepo, ledgerClient)

		stats, err := svc.Totals(context.Background())
		require.Error(t, err)
		assert.Nil(t, stats)
	})
}
