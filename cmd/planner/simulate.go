package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"proximity-planner/pkg/follow"
	"proximity-planner/pkg/planner"
)

var (
	flagTicks    int
	flagInterval time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Walk an agent along planned routes, one waypoint per tick",
	Long: `Runs the tick loop: every interval the agent moves to the next waypoint.
When the route is exhausted a new goal is chosen (and the roadmap rebuilt if
follower.regenerate_on_exhaust is set). Stops after --ticks ticks or on Ctrl+C.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Number of ticks to run (0 = until interrupted)")
	simulateCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Tick interval override (e.g. 100ms)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	interval := e.cfg.Follower.TickInterval
	if flagInterval > 0 {
		interval = flagInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	ticks := 0
	err = e.service.Run(ctx, interval, func(res planner.TickResult) bool {
		ticks++
		switch res.Event.Kind {
		case follow.EventWaypoint:
			wp := res.Event.Waypoint
			fmt.Fprintf(out, "%6d  waypoint  node=%-5d x=%9.3f y=%9.3f\n", ticks, wp.Node, wp.Pos[0], wp.Pos[1])
		case follow.EventExhausted:
			fmt.Fprintf(out, "%6d  exhausted -> new route %d -> %d (found=%v regenerated=%v)\n",
				ticks, res.Start, res.Goal, res.Found, res.Regenerated)
		}
		return flagTicks == 0 || ticks < flagTicks
	})
	if errors.Is(err, context.Canceled) {
		e.logger.Info("simulation stopped", "ticks", ticks)
		return nil
	}
	return err
}
