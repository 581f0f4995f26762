package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print roadmap statistics",
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	g := e.service.Graph()
	edges := g.EdgeCount()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Layout:            %s\n", e.cfg.Layout.Kind)
	fmt.Fprintf(out, "Nodes:             %d\n", g.Len())
	fmt.Fprintf(out, "Neighbours (k):    %d\n", g.K)
	fmt.Fprintf(out, "Directed edges:    %d\n", edges)
	fmt.Fprintf(out, "One-way edges:     %d\n", g.AsymmetricEdges())
	if g.Len() > 0 {
		fmt.Fprintf(out, "Mean out-degree:   %.2f\n", float64(edges)/float64(g.Len()))
	}
	return nil
}
