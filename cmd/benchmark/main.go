package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/delaneyj/observable/cell"
	"github.com/delaneyj/observable/cmd/benchmark/templates"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	listenersKey  = "listeners"
	iterationsKey = "iterations"
	reportKey     = "report"
	profileKey    = "profile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure FireChanged latency across listener fan-outs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  listenersKey,
				Usage: "Comma separated listener counts",
				Value: "1,10,100,1000",
			},
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "FireChanged calls per fan-out",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  reportKey,
				Usage: "Write a markdown report to this path",
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this path",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	fanOuts, err := parseCounts(cmd.String(listenersKey))
	if err != nil {
		return err
	}
	iters := int(cmd.Int(iterationsKey))
	if iters <= 0 {
		return fmt.Errorf("%s must be positive, got %d", iterationsKey, iters)
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	if _, err := runAll(fanOuts, iters); err != nil {
		return err
	}

	rows, err := runAll(fanOuts, iters)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Cell FireChanged")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "listeners", "avg", "min", "p75", "p99", "max"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Name, r.Listeners, r.Avg, r.Min, r.P75, r.P99, r.Max})
	}
	tbl.Render()

	if path := cmd.String(reportKey); path != "" {
		contents := templates.Report("Cell FireChanged", iters, rows)
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			return err
		}
		log.Printf("report written to %s", path)
	}
	return nil
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid listener count %q: %w", part, err)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no listener counts in %q", s)
	}
	return counts, nil
}

func runAll(fanOuts []int, iters int) ([]templates.Row, error) {
	var rows []templates.Row
	for _, kind := range []string{"sync", "debounced"} {
		for _, w := range fanOuts {
			row, err := run(kind, w, iters)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func pass(int, int) error {
	return nil
}

func run(kind string, listeners, iters int) (templates.Row, error) {
	c, err := cell.New(0, cell.NoClone[int])
	if err != nil {
		return templates.Row{}, err
	}
	// debounced timers never fire during the run, only their scheduling is measured
	defer c.Close()

	for i := 0; i < listeners; i++ {
		if kind == "sync" {
			c.OnChange(pass)
		} else {
			c.OnChangeDebounced(pass, time.Hour)
		}
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		if err := c.FireChanged(c.Value() + 1); err != nil {
			return templates.Row{}, err
		}
		tach.AddTime(time.Since(start))
	}

	calc := tach.Calc()
	return templates.Row{
		Name:      fmt.Sprintf("%s: %d listeners", kind, listeners),
		Listeners: listeners,
		Avg:       calc.Time.Avg,
		Min:       calc.Time.Min,
		P75:       calc.Time.P75,
		P99:       calc.Time.P99,
		Max:       calc.Time.Max,
	}, nil
}
