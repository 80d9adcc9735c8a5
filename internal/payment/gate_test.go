package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehall/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT})
}

func TestSettleCompletes(t *testing.T) {
	gate := NewGate(Config{
		SettlementDelayMin:   0,
		SettlementDelayMax:   0,
		LivenessPollInterval: 10 * time.Millisecond,
		GraceDelay:           0,
	}, testLogger())

	err := gate.Settle(context.Background(), 120.00)
	require.NoError(t, err)
}

func TestSettleBlocksForDelays(t *testing.T) {
	gate := NewGate(Config{
		SettlementDelayMin:   30 * time.Millisecond,
		SettlementDelayMax:   30 * time.Millisecond,
		LivenessPollInterval: 10 * time.Millisecond,
		GraceDelay:           20 * time.Millisecond,
	}, testLogger())

	start := time.Now()
	err := gate.Settle(context.Background(), 60.00)
	elapsed := time.Since(start)

	require.NoError(t, err)
	// two settlement delays plus the grace delay
	assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
}

func TestSettleInterrupted(t *testing.T) {
	gate := NewGate(Config{
		SettlementDelayMin:   5 * time.Second,
		SettlementDelayMax:   5 * time.Second,
		LivenessPollInterval: 10 * time.Millisecond,
		GraceDelay:           0,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := gate.Settle(ctx, 60.00)

	require.ErrorIs(t, err, ErrInterrupted)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRandomDelayWithinRange(t *testing.T) {
	gate := NewGate(Config{
		SettlementDelayMin:   2 * time.Millisecond,
		SettlementDelayMax:   8 * time.Millisecond,
		LivenessPollInterval: time.Millisecond,
	}, testLogger())

	for i := 0; i < 100; i++ {
		d := gate.randomDelay()
		assert.GreaterOrEqual(t, d, 2*time.Millisecond)
		assert.LessOrEqual(t, d, 8*time.Millisecond)
	}
}
