// planner builds proximity roadmaps, plans routes over them with A* and
// walks an agent along the result.
//
// Usage:
//
//	planner route              - Build a roadmap and print one route
//	planner simulate           - Walk an agent tick by tick, replanning forever
//	planner graph              - Print roadmap statistics
//	planner serve              - Serve routes over HTTP
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.config, ./configs, embedded)
//	--seed <value>      - RNG seed (0 = config value)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Proximity roadmap planner",
	Long: `planner scatters points (or lays out a grid), connects every point to
its k nearest neighbours and finds shortest routes with A*.

Examples:
  planner route
  planner route --start 3 --goal 41
  planner simulate --ticks 40 --interval 100ms
  planner graph --config ./configs/planner.yaml
  planner serve --addr :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override: debug, info, warn, error")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(serveCmd)
}
