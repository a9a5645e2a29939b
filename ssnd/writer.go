// Writers reproducing the on-disk instance and scenario layouts, so a
// parsed record can be written back out and re-parsed to an equal value.

package ssnd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteInstance writes inst in the instance file layout: header key/value
// lines, the physical arc list, then the tab-separated tables separated by
// blank lines. Execution-arc tables come out in (node, time) order so the
// output is deterministic.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)

	if inst.Name != "" {
		fmt.Fprintf(bw, "Name %s\n", inst.Name)
	}
	fmt.Fprintf(bw, "NodeSize %d\n", inst.NodeSize)
	fmt.Fprintf(bw, "TimePeriods %s\n", formatIntList(inst.TimePeriods))
	fmt.Fprintf(bw, "RequestSize %d\n", inst.RequestSize)
	fmt.Fprintf(bw, "ServiceNoPerArc %d\n", inst.ServiceNoPerArc)
	fmt.Fprintf(bw, "ServiceCapacity %d\n", inst.ServiceCapacity)
	fmt.Fprintf(bw, "FastServiceRatio %s\n", formatFloat(inst.FastServiceRatio))
	fmt.Fprintf(bw, "RevenueRange (%s, %s)\n", formatRange(inst.ContractRevenue), formatRange(inst.SpotRevenue))
	fmt.Fprintf(bw, "ReqDemandRange %s\n", formatRange(inst.DemandRange))
	fmt.Fprintf(bw, "ServiceCost %d\n", inst.ServiceCost)
	fmt.Fprintf(bw, "Trans/HoldingCost (%d, %d)\n", inst.TransCost, inst.HoldingCost)
	fmt.Fprintf(bw, "Arcs %s\n", formatArcList(inst.PhysicalArcs))

	bw.WriteString("\n" + servicesHeaderRow + "\n")
	for _, s := range inst.Services {
		fmt.Fprintf(bw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			s.ID, formatServiceArc(s.Leg), s.Origin, s.Departure, s.Destination, s.Arrival,
			formatFloat(s.VariableCost), formatFloat(s.FixedCost))
	}

	bw.WriteString("\n" + requestsHeaderRow + "\n")
	for _, r := range inst.Requests {
		contract := "False"
		if r.Contract {
			contract = "True"
		}
		fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d\t%s\t%s\t%d\n",
			r.ID, r.Origin, r.Destination, r.Release, r.Due, contract, formatFloat(r.Revenue), r.Volume)
	}

	if len(inst.HoldingArcs) > 0 {
		bw.WriteString("\n" + holdingHeaderRow + "\n")
		for _, h := range inst.HoldingArcs {
			fmt.Fprintf(bw, "%s\t%s\n", formatServiceArc(h.Arc), formatFloat(h.Cost))
		}
	}

	if len(inst.Penalties) > 0 {
		bw.WriteString("\n" + penaltiesHeaderRow + "\n")
		for _, p := range inst.Penalties {
			fmt.Fprintf(bw, "%d\t%d\t%s\t%s\n", p.Request, p.Time, formatFloat(p.Early), formatFloat(p.Late))
		}
	}

	if len(inst.ExecIn) > 0 {
		bw.WriteString("\n" + execInHeaderRow + "\n")
		for _, tn := range sortedTimedNodes(inst.ExecIn) {
			fmt.Fprintf(bw, "%s\t%s\n", formatTimedNode(tn), formatServiceArcList(inst.ExecIn[tn]))
		}
	}

	if len(inst.ExecOut) > 0 {
		bw.WriteString("\n" + execOutHeaderRow + "\n")
		for _, tn := range sortedTimedNodes(inst.ExecOut) {
			fmt.Fprintf(bw, "%s\t%s\n", formatTimedNode(tn), formatServiceArcList(inst.ExecOut[tn]))
		}
	}

	return bw.Flush()
}

// WriteScenarioSet writes set in the wScenarios file layout.
func WriteScenarioSet(w io.Writer, set *ScenarioSet) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(scenariosHeaderRow + "\n")
	for _, req := range set.Requests {
		draws := make([]string, len(req.Draws))
		for i, d := range req.Draws {
			draws[i] = strconv.Itoa(d)
		}
		fmt.Fprintf(bw, "%d\t%d\t%s\n", req.ID, req.Baseline, strings.Join(draws, ";"))
	}
	return bw.Flush()
}

// SaveInstance writes inst to a new file at path.
func SaveInstance(path string, inst *Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating instance file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := WriteInstance(f, inst); err != nil {
		return fmt.Errorf("writing instance file %s: %w", path, err)
	}
	return nil
}

// SaveScenarioSet writes set to a new file at path.
func SaveScenarioSet(path string, set *ScenarioSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scenario file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := WriteScenarioSet(f, set); err != nil {
		return fmt.Errorf("writing scenario file %s: %w", path, err)
	}
	return nil
}
