// Defines the Instance record holding one complete SSND benchmark problem:
// global parameters, time-expanded service legs, demand requests, holding
// arcs, penalties and the execution-arc adjacency of each time node.

package ssnd

import (
	"fmt"
	"sort"
)

// TimedNode identifies a terminal at a specific period in the
// time-expanded network.
type TimedNode struct {
	Node int
	Time int
}

// Arc is a directed physical connection between two terminals.
type Arc struct {
	From int
	To   int
}

// ServiceArc is a directed arc in the time-expanded network.
type ServiceArc struct {
	From TimedNode
	To   TimedNode
}

// ServiceLeg is one scheduled, capacitated transportation service. The
// time-expanded arc and its flat origin/departure/destination/arrival view
// carry the same information; both are kept because downstream optimizers
// index by either.
type ServiceLeg struct {
	ID           int
	Leg          ServiceArc
	Origin       int
	Departure    int
	Destination  int
	Arrival      int
	Capacity     float64
	VariableCost float64
	FixedCost    float64
}

// DemandRequest is one origin-destination shipment demand with its
// release/due time window. Volume is the baseline (mean) demand; stochastic
// realizations come from a ScenarioSet.
type DemandRequest struct {
	ID          int
	Origin      int
	Destination int
	Release     int
	Due         int
	Contract    bool
	Revenue     float64
	Volume      int
}

// HoldingArc is a storage arc keeping freight at a terminal between two
// consecutive periods.
type HoldingArc struct {
	Arc  ServiceArc
	Cost float64
}

// TimePenalty is the early/late delivery penalty of one request at one period.
type TimePenalty struct {
	Request int
	Time    int
	Early   float64
	Late    float64
}

// Range is a closed integer interval.
type Range struct {
	Low  int
	High int
}

// Instance is the root record for one benchmark problem. It owns every
// record reachable from it and is never mutated after parsing; the parser
// is the sole writer.
type Instance struct {
	Name string

	NodeSize         int
	TimePeriods      []int
	RequestSize      int
	ServiceNoPerArc  int
	ServiceCapacity  int
	FastServiceRatio float64
	ContractRevenue  Range
	SpotRevenue      Range
	DemandRange      Range
	ServiceCost      int
	TransCost        int
	HoldingCost      int

	PhysicalArcs []Arc
	Services     []ServiceLeg
	Requests     []DemandRequest
	HoldingArcs  []HoldingArc
	Penalties    []TimePenalty

	// Execution arcs entering / leaving each time node.
	ExecIn  map[TimedNode][]ServiceArc
	ExecOut map[TimedNode][]ServiceArc
}

// TimedNodes returns every (node, period) pair of the time-expanded
// network in deterministic order.
func (inst *Instance) TimedNodes() []TimedNode {
	out := make([]TimedNode, 0, inst.NodeSize*len(inst.TimePeriods))
	for n := 0; n < inst.NodeSize; n++ {
		for _, t := range inst.TimePeriods {
			out = append(out, TimedNode{Node: n, Time: t})
		}
	}
	return out
}

// ServiceByID finds a service leg by its identifier, or nil.
func (inst *Instance) ServiceByID(id int) *ServiceLeg {
	for i := range inst.Services {
		if inst.Services[i].ID == id {
			return &inst.Services[i]
		}
	}
	return nil
}

// RequestByID finds a demand request by its identifier, or nil.
func (inst *Instance) RequestByID(id int) *DemandRequest {
	for i := range inst.Requests {
		if inst.Requests[i].ID == id {
			return &inst.Requests[i]
		}
	}
	return nil
}

// Horizon returns the last planning period, or 0 for an empty horizon.
func (inst *Instance) Horizon() int {
	if len(inst.TimePeriods) == 0 {
		return 0
	}
	return inst.TimePeriods[len(inst.TimePeriods)-1]
}

// Validate checks the structural invariants of a fully built Instance:
// positive sizes, service legs that move forward in time between distinct
// in-range terminals, and request windows inside the planning horizon.
// ParseInstance runs the same checks line by line during parsing; Validate
// exists for callers assembling instances programmatically.
func (inst *Instance) Validate() error {
	if inst.NodeSize <= 0 {
		return fmt.Errorf("node size must be > 0 (got %d)", inst.NodeSize)
	}
	if len(inst.TimePeriods) == 0 {
		return fmt.Errorf("planning horizon is empty")
	}
	for _, a := range inst.PhysicalArcs {
		if err := inst.checkNodePair(a.From, a.To); err != nil {
			return fmt.Errorf("physical arc %v: %w", a, err)
		}
	}
	for i := range inst.Services {
		if err := inst.checkService(&inst.Services[i]); err != nil {
			return err
		}
	}
	for i := range inst.Requests {
		if err := inst.checkRequest(&inst.Requests[i]); err != nil {
			return err
		}
	}
	return nil
}

func (inst *Instance) checkNodePair(from, to int) error {
	if from < 0 || from >= inst.NodeSize {
		return fmt.Errorf("node %d out of range [0, %d)", from, inst.NodeSize)
	}
	if to < 0 || to >= inst.NodeSize {
		return fmt.Errorf("node %d out of range [0, %d)", to, inst.NodeSize)
	}
	if from == to {
		return fmt.Errorf("origin and destination are both node %d", from)
	}
	return nil
}

func (inst *Instance) checkService(s *ServiceLeg) error {
	if err := inst.checkNodePair(s.Origin, s.Destination); err != nil {
		return fmt.Errorf("service %d: %w", s.ID, err)
	}
	if s.Departure >= s.Arrival {
		return fmt.Errorf("service %d: departure %d is not before arrival %d", s.ID, s.Departure, s.Arrival)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("service %d: capacity must be > 0 (got %g)", s.ID, s.Capacity)
	}
	return nil
}

func (inst *Instance) checkRequest(r *DemandRequest) error {
	if err := inst.checkNodePair(r.Origin, r.Destination); err != nil {
		return fmt.Errorf("request %d: %w", r.ID, err)
	}
	if r.Release > r.Due {
		return fmt.Errorf("request %d: release %d is after due %d", r.ID, r.Release, r.Due)
	}
	if r.Volume < 0 {
		return fmt.Errorf("request %d: volume must be >= 0 (got %d)", r.ID, r.Volume)
	}
	return nil
}

// sortedTimedNodes returns the keys of an execution-arc map in (node, time)
// order. Writers and summaries rely on this for deterministic output.
func sortedTimedNodes(m map[TimedNode][]ServiceArc) []TimedNode {
	keys := make([]TimedNode, 0, len(m))
	for tn := range m {
		keys = append(keys, tn)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Node != keys[j].Node {
			return keys[i].Node < keys[j].Node
		}
		return keys[i].Time < keys[j].Time
	})
	return keys
}
