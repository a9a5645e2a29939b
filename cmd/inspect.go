package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssnd-bench/ssndkit/ssnd"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <instance-file> [<instance-file> ...]",
	Short: "Print a summary of one or more instance files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			inst, err := ssnd.LoadInstance(path)
			if err != nil {
				logrus.Fatalf("Inspection failed: %v", err)
			}
			printSummary(ssnd.Summarize(inst))
		}
	},
}

func printSummary(s *ssnd.InstanceSummary) {
	fmt.Fprintf(os.Stdout, "%s\n", s.Name)
	fmt.Fprintf(os.Stdout, "  nodes: %d  periods: %d (horizon %d)  physical arcs: %d\n",
		s.Nodes, s.Periods, s.Horizon, s.PhysicalArcs)
	fmt.Fprintf(os.Stdout, "  services: %d (mean duration %.2f, total capacity %g)\n",
		s.Services, s.MeanLegDuration, s.TotalCapacity)
	fmt.Fprintf(os.Stdout, "  requests: %d (%d contract, total baseline demand %d)\n",
		s.Requests, s.ContractRequests, s.TotalBaseDemand)
	if s.HoldingArcs > 0 || s.Penalties > 0 {
		fmt.Fprintf(os.Stdout, "  holding arcs: %d  penalties: %d\n", s.HoldingArcs, s.Penalties)
	}
}
