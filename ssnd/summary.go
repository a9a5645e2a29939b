package ssnd

// InstanceSummary aggregates statistics from a parsed Instance.
type InstanceSummary struct {
	Name             string
	Nodes            int
	Periods          int
	Horizon          int
	PhysicalArcs     int
	Services         int
	Requests         int
	ContractRequests int
	HoldingArcs      int
	Penalties        int
	MeanLegDuration  float64
	TotalCapacity    float64
	TotalBaseDemand  int
}

// Summarize computes aggregate statistics from an Instance. Safe for nil
// (returns zero-value fields).
func Summarize(inst *Instance) *InstanceSummary {
	summary := &InstanceSummary{}
	if inst == nil {
		return summary
	}

	summary.Name = inst.Name
	summary.Nodes = inst.NodeSize
	summary.Periods = len(inst.TimePeriods)
	summary.Horizon = inst.Horizon()
	summary.PhysicalArcs = len(inst.PhysicalArcs)
	summary.Services = len(inst.Services)
	summary.Requests = len(inst.Requests)
	summary.HoldingArcs = len(inst.HoldingArcs)
	summary.Penalties = len(inst.Penalties)

	if len(inst.Services) > 0 {
		totalDuration := 0
		for _, s := range inst.Services {
			totalDuration += s.Arrival - s.Departure
			summary.TotalCapacity += s.Capacity
		}
		summary.MeanLegDuration = float64(totalDuration) / float64(len(inst.Services))
	}

	for _, r := range inst.Requests {
		if r.Contract {
			summary.ContractRequests++
		}
		summary.TotalBaseDemand += r.Volume
	}

	return summary
}
