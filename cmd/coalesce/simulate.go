package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/delaneyj/observable/cell"
	"go.uber.org/zap"
)

type simulationConfig struct {
	changes  int
	interval time.Duration
	clock    clock.Clock
	logger   *zap.Logger
}

type simulationResult struct {
	delay          time.Duration
	changes        int
	syncCalls      int64
	debouncedCalls int64
	lastOld        int
	lastNew        int
}

// simulate fires cfg.changes changes cfg.interval apart at a cell with one
// synchronous and one debounced listener, then waits for the last window.
func simulate(ctx context.Context, cfg simulationConfig, delay time.Duration) (simulationResult, error) {
	res := simulationResult{delay: delay, changes: cfg.changes}

	c, err := cell.New(0, cell.NoClone[int],
		cell.WithClock(cfg.clock),
		cell.WithLogger(cfg.logger.With(zap.Duration("delay", delay))),
	)
	if err != nil {
		return res, err
	}
	defer c.Close()

	var (
		syncCalls, debouncedCalls atomic.Int64
		mu                        sync.Mutex
		done                      = make(chan struct{}, 1)
	)
	c.OnChange(func(int, int) error {
		syncCalls.Add(1)
		return nil
	})
	c.OnChangeDebounced(func(oldValue, newValue int) error {
		debouncedCalls.Add(1)
		mu.Lock()
		res.lastOld, res.lastNew = oldValue, newValue
		mu.Unlock()
		if newValue == cfg.changes {
			done <- struct{}{}
		}
		return nil
	}, delay)

	for i := 1; i <= cfg.changes; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := c.FireChanged(i); err != nil {
			return res, err
		}
		cfg.clock.Sleep(cfg.interval)
	}

	select {
	case <-done:
	case <-ctx.Done():
		return res, ctx.Err()
	case <-cfg.clock.After(delay + time.Second):
		return res, fmt.Errorf("last debounced notification did not arrive")
	}

	res.syncCalls = syncCalls.Load()
	res.debouncedCalls = debouncedCalls.Load()
	mu.Lock()
	defer mu.Unlock()
	return res, nil
}

func parseDelays(s string) ([]time.Duration, error) {
	var delays []time.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", part, err)
		}
		delays = append(delays, d)
	}
	if len(delays) == 0 {
		return nil, fmt.Errorf("no delays in %q", s)
	}
	return delays, nil
}
