// Package payment simulates the external settlement gate purchases must
// clear before any seat is committed. Settlement runs on its own goroutine
// while a liveness watcher reports progress at a fixed poll interval; the
// call returns only after both have finished and the grace delay elapsed.
package payment

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"cinehall/pkg/logger"
)

// ErrInterrupted is returned when the caller's context is cancelled while
// settlement is still in flight.
var ErrInterrupted = errors.New("payment: settlement interrupted")

type Config struct {
	SettlementDelayMin   time.Duration
	SettlementDelayMax   time.Duration
	LivenessPollInterval time.Duration
	GraceDelay           time.Duration
}

type Gate struct {
	cfg Config
	log *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGate(cfg Config, log *logger.Logger) *Gate {
	return &Gate{
		cfg: cfg,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Settle runs the settlement round-trip for the given amount. It blocks the
// caller for the full exchange: connect, charge, watcher drain, grace delay.
func (g *Gate) Settle(ctx context.Context, amount float64) error {
	running := &atomic.Bool{}
	running.Store(true)

	var interrupted atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer running.Store(false)

		g.log.Info("Connecting to settlement provider", "amount", amount)
		if !g.sleep(ctx, g.randomDelay()) {
			interrupted.Store(true)
			return
		}

		g.log.Info("Applying charge", "amount", amount)
		if !g.sleep(ctx, g.randomDelay()) {
			interrupted.Store(true)
			return
		}

		g.log.Info("Charge settled", "amount", amount)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(g.cfg.LivenessPollInterval)
		defer ticker.Stop()

		for running.Load() {
			select {
			case <-ticker.C:
				if running.Load() {
					g.log.Info("Settlement in progress...")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if interrupted.Load() {
		return ErrInterrupted
	}

	if !g.sleep(ctx, g.cfg.GraceDelay) {
		return ErrInterrupted
	}
	return nil
}

// sleep waits for d or until ctx is cancelled. Returns false on cancellation.
func (g *Gate) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (g *Gate) randomDelay() time.Duration {
	min, max := g.cfg.SettlementDelayMin, g.cfg.SettlementDelayMax
	if max <= min {
		return min
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return min + time.Duration(g.rng.Int63n(int64(max-min)+1))
}
