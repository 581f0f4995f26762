package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagStart int
	flagGoal  int
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Build a roadmap and print one route",
	Long: `Builds a roadmap from the configured layout and prints the route between
two nodes. Without --start/--goal both ends are picked at random.`,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().IntVar(&flagStart, "start", -1, "Start node id")
	routeCmd.Flags().IntVar(&flagGoal, "goal", -1, "Goal node id")
}

func runRoute(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	svc := e.service

	if flagStart >= 0 || flagGoal >= 0 {
		if flagStart < 0 || flagGoal < 0 {
			return fmt.Errorf("--start and --goal must be given together")
		}
		if _, err := svc.Plan(flagStart, flagGoal); err != nil {
			return err
		}
	}

	g := svc.Graph()
	start, goal := svc.Route()
	path := svc.Follower().Path()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Roadmap: %d nodes, %d edges (k=%d)\n", g.Len(), g.EdgeCount(), g.K)
	fmt.Fprintf(out, "Route:   %d -> %d\n", start, goal)

	if path.Empty() {
		fmt.Fprintln(out, "No path found.")
		return nil
	}

	cost, _ := path.Cost(g)
	fmt.Fprintf(out, "Cost:    %.3f over %d waypoints\n\n", cost, len(path))
	fmt.Fprintf(out, "  %-4s  %-6s  %10s  %10s\n", "#", "Node", "X", "Y")
	for i, id := range path {
		p := g.Positions[id]
		fmt.Fprintf(out, "  %-4d  %-6d  %10.3f  %10.3f\n", i, id, p[0], p[1])
	}
	return nil
}
