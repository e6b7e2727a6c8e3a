package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	changesKey  = "changes"
	intervalKey = "interval"
	delaysKey   = "delays"
	verboseKey  = "verbose"
)

func main() {
	log.Print("Starting coalesce simulation, please wait...")
	defer log.Print("Finished coalesce simulation")

	cmd := &cli.Command{
		Name:  "coalesce",
		Usage: "Show how debounced listeners coalesce a burst of changes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  changesKey,
				Usage: "Number of changes fired",
				Value: 50,
			},
			&cli.DurationFlag{
				Name:  intervalKey,
				Usage: "Time between changes",
				Value: 10 * time.Millisecond,
			},
			&cli.StringFlag{
				Name:  delaysKey,
				Usage: "Comma separated listener delays",
				Value: "0s,5ms,20ms,100ms",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log debounce windows",
			},
		},
		Action: coalesce,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func coalesce(ctx context.Context, cmd *cli.Command) error {
	delays, err := parseDelays(cmd.String(delaysKey))
	if err != nil {
		return err
	}
	cfg := simulationConfig{
		changes:  int(cmd.Int(changesKey)),
		interval: cmd.Duration(intervalKey),
		clock:    clock.New(),
		logger:   zap.NewNop(),
	}
	if cfg.changes <= 0 {
		return fmt.Errorf("%s must be positive, got %d", changesKey, cfg.changes)
	}
	if cmd.Bool(verboseKey) {
		if cfg.logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer cfg.logger.Sync()
	}

	results := make([]simulationResult, len(delays))
	eg, ctx := errgroup.WithContext(ctx)
	for i, delay := range delays {
		eg.Go(func() error {
			log.Printf("Running delay %s", delay)
			res, err := simulate(ctx, cfg, delay)
			if err != nil {
				return fmt.Errorf("delay %s: %w", delay, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"delay", "changes", "sync calls", "debounced calls", "coalesced%", "last window",
	})
	for _, res := range results {
		coalesced := 100 * (1 - float64(res.debouncedCalls)/float64(res.changes))
		table.Append([]string{
			res.delay.String(),
			humanize.Comma(int64(res.changes)),
			humanize.Comma(res.syncCalls),
			humanize.Comma(res.debouncedCalls),
			fmt.Sprintf("%0.1f", coalesced),
			fmt.Sprintf("%d -> %d", res.lastOld, res.lastNew),
		})
	}
	table.Render()
	return nil
}
