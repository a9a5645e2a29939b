// Conversion of parsed instances to JSON and CSV for downstream tooling
// that does not speak the benchmark text format. The JSON document
// flattens the execution-arc maps into keyed rows since struct-keyed maps
// have no JSON encoding.

package ssnd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type serviceLegJSON struct {
	ID           int     `json:"id"`
	Origin       int     `json:"origin"`
	Departure    int     `json:"departure"`
	Destination  int     `json:"destination"`
	Arrival      int     `json:"arrival"`
	Capacity     float64 `json:"capacity"`
	VariableCost float64 `json:"variable_cost"`
	FixedCost    float64 `json:"fixed_cost"`
}

type demandRequestJSON struct {
	ID          int     `json:"id"`
	Origin      int     `json:"origin"`
	Destination int     `json:"destination"`
	Release     int     `json:"release"`
	Due         int     `json:"due"`
	Contract    bool    `json:"contract"`
	Revenue     float64 `json:"revenue"`
	Volume      int     `json:"volume"`
}

type holdingArcJSON struct {
	Node int     `json:"node"`
	From int     `json:"from_time"`
	To   int     `json:"to_time"`
	Cost float64 `json:"cost"`
}

type timePenaltyJSON struct {
	Request int     `json:"request"`
	Time    int     `json:"time"`
	Early   float64 `json:"early"`
	Late    float64 `json:"late"`
}

type execArcsJSON struct {
	Node int     `json:"node"`
	Time int     `json:"time"`
	Arcs [][]int `json:"arcs"` // each arc as [fromNode, fromTime, toNode, toTime]
}

type instanceJSON struct {
	Name             string              `json:"name"`
	NodeSize         int                 `json:"node_size"`
	TimePeriods      []int               `json:"time_periods"`
	RequestSize      int                 `json:"request_size"`
	ServiceNoPerArc  int                 `json:"service_no_per_arc"`
	ServiceCapacity  int                 `json:"service_capacity"`
	FastServiceRatio float64             `json:"fast_service_ratio"`
	ContractRevenue  [2]int              `json:"contract_revenue_range"`
	SpotRevenue      [2]int              `json:"spot_revenue_range"`
	DemandRange      [2]int              `json:"demand_range"`
	ServiceCost      int                 `json:"service_cost"`
	TransCost        int                 `json:"trans_cost"`
	HoldingCost      int                 `json:"holding_cost"`
	PhysicalArcs     [][2]int            `json:"physical_arcs"`
	Services         []serviceLegJSON    `json:"services"`
	Requests         []demandRequestJSON `json:"requests"`
	HoldingArcs      []holdingArcJSON    `json:"holding_arcs,omitempty"`
	Penalties        []timePenaltyJSON   `json:"penalties,omitempty"`
	ExecIn           []execArcsJSON      `json:"exec_arcs_in,omitempty"`
	ExecOut          []execArcsJSON      `json:"exec_arcs_out,omitempty"`
}

func flattenExec(m map[TimedNode][]ServiceArc) []execArcsJSON {
	if len(m) == 0 {
		return nil
	}
	out := make([]execArcsJSON, 0, len(m))
	for _, tn := range sortedTimedNodes(m) {
		arcs := make([][]int, 0, len(m[tn]))
		for _, a := range m[tn] {
			arcs = append(arcs, []int{a.From.Node, a.From.Time, a.To.Node, a.To.Time})
		}
		out = append(out, execArcsJSON{Node: tn.Node, Time: tn.Time, Arcs: arcs})
	}
	return out
}

// ExportJSON writes inst as an indented JSON document.
func ExportJSON(w io.Writer, inst *Instance) error {
	doc := instanceJSON{
		Name:             inst.Name,
		NodeSize:         inst.NodeSize,
		TimePeriods:      inst.TimePeriods,
		RequestSize:      inst.RequestSize,
		ServiceNoPerArc:  inst.ServiceNoPerArc,
		ServiceCapacity:  inst.ServiceCapacity,
		FastServiceRatio: inst.FastServiceRatio,
		ContractRevenue:  [2]int{inst.ContractRevenue.Low, inst.ContractRevenue.High},
		SpotRevenue:      [2]int{inst.SpotRevenue.Low, inst.SpotRevenue.High},
		DemandRange:      [2]int{inst.DemandRange.Low, inst.DemandRange.High},
		ServiceCost:      inst.ServiceCost,
		TransCost:        inst.TransCost,
		HoldingCost:      inst.HoldingCost,
		ExecIn:           flattenExec(inst.ExecIn),
		ExecOut:          flattenExec(inst.ExecOut),
	}
	for _, a := range inst.PhysicalArcs {
		doc.PhysicalArcs = append(doc.PhysicalArcs, [2]int{a.From, a.To})
	}
	for _, s := range inst.Services {
		doc.Services = append(doc.Services, serviceLegJSON{
			ID: s.ID, Origin: s.Origin, Departure: s.Departure,
			Destination: s.Destination, Arrival: s.Arrival,
			Capacity: s.Capacity, VariableCost: s.VariableCost, FixedCost: s.FixedCost,
		})
	}
	for _, r := range inst.Requests {
		doc.Requests = append(doc.Requests, demandRequestJSON{
			ID: r.ID, Origin: r.Origin, Destination: r.Destination,
			Release: r.Release, Due: r.Due, Contract: r.Contract,
			Revenue: r.Revenue, Volume: r.Volume,
		})
	}
	for _, h := range inst.HoldingArcs {
		doc.HoldingArcs = append(doc.HoldingArcs, holdingArcJSON{
			Node: h.Arc.From.Node, From: h.Arc.From.Time, To: h.Arc.To.Time, Cost: h.Cost,
		})
	}
	for _, p := range inst.Penalties {
		doc.Penalties = append(doc.Penalties, timePenaltyJSON{
			Request: p.Request, Time: p.Time, Early: p.Early, Late: p.Late,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding instance JSON: %w", err)
	}
	return nil
}

// CSV column headers for the service leg export.
var legCSVColumns = []string{
	"service_id", "origin", "departure", "destination", "arrival",
	"capacity", "variable_cost", "fixed_cost",
}

// ExportLegsCSV writes the service legs of inst as a CSV table.
func ExportLegsCSV(w io.Writer, inst *Instance) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(legCSVColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range inst.Services {
		row := []string{
			strconv.Itoa(s.ID),
			strconv.Itoa(s.Origin),
			strconv.Itoa(s.Departure),
			strconv.Itoa(s.Destination),
			strconv.Itoa(s.Arrival),
			formatFloat(s.Capacity),
			formatFloat(s.VariableCost),
			formatFloat(s.FixedCost),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for service %d: %w", s.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
