// Package report builds YAML dataset reports over collections of parsed
// benchmark instances and scenario sets, for quick inspection of an
// extracted archive without touching the raw text files.
package report

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ssnd-bench/ssndkit/ssnd"
)

// InstanceReport is one instance's entry in a dataset report.
type InstanceReport struct {
	Key              string  `yaml:"key"`
	Name             string  `yaml:"name"`
	Nodes            int     `yaml:"nodes"`
	Periods          int     `yaml:"periods"`
	Horizon          int     `yaml:"horizon"`
	PhysicalArcs     int     `yaml:"physical_arcs"`
	Services         int     `yaml:"services"`
	Requests         int     `yaml:"requests"`
	ContractRequests int     `yaml:"contract_requests"`
	HoldingArcs      int     `yaml:"holding_arcs,omitempty"`
	Penalties        int     `yaml:"penalties,omitempty"`
	MeanLegDuration  float64 `yaml:"mean_leg_duration"`
	TotalCapacity    float64 `yaml:"total_capacity"`
	TotalBaseDemand  int     `yaml:"total_base_demand"`
}

// ScenarioSetReport is one scenario set's entry in a dataset report.
type ScenarioSetReport struct {
	Key       string  `yaml:"key"`
	Nu        float64 `yaml:"nu"`
	Requests  int     `yaml:"requests"`
	Scenarios int     `yaml:"scenarios"`
	Weight    float64 `yaml:"scenario_weight"`
}

// DatasetReport summarizes one extracted dataset archive.
type DatasetReport struct {
	Archive      string              `yaml:"archive,omitempty"`
	Instances    []InstanceReport    `yaml:"instances"`
	ScenarioSets []ScenarioSetReport `yaml:"scenario_sets,omitempty"`
}

// Build assembles a report from loaded instances and scenario sets, sorted
// by size-class key for deterministic output.
func Build(instances map[ssnd.InstanceKey]*ssnd.Instance, sets map[ssnd.ScenarioKey]*ssnd.ScenarioSet) *DatasetReport {
	r := &DatasetReport{}

	instKeys := make([]ssnd.InstanceKey, 0, len(instances))
	for k := range instances {
		instKeys = append(instKeys, k)
	}
	sort.Slice(instKeys, func(i, j int) bool { return lessInstanceKey(instKeys[i], instKeys[j]) })
	for _, k := range instKeys {
		s := ssnd.Summarize(instances[k])
		r.Instances = append(r.Instances, InstanceReport{
			Key:              k.String(),
			Name:             s.Name,
			Nodes:            s.Nodes,
			Periods:          s.Periods,
			Horizon:          s.Horizon,
			PhysicalArcs:     s.PhysicalArcs,
			Services:         s.Services,
			Requests:         s.Requests,
			ContractRequests: s.ContractRequests,
			HoldingArcs:      s.HoldingArcs,
			Penalties:        s.Penalties,
			MeanLegDuration:  s.MeanLegDuration,
			TotalCapacity:    s.TotalCapacity,
			TotalBaseDemand:  s.TotalBaseDemand,
		})
	}

	setKeys := make([]ssnd.ScenarioKey, 0, len(sets))
	for k := range sets {
		setKeys = append(setKeys, k)
	}
	sort.Slice(setKeys, func(i, j int) bool {
		if setKeys[i].InstanceKey != setKeys[j].InstanceKey {
			return lessInstanceKey(setKeys[i].InstanceKey, setKeys[j].InstanceKey)
		}
		return setKeys[i].Nu < setKeys[j].Nu
	})
	for _, k := range setKeys {
		set := sets[k]
		entry := ScenarioSetReport{
			Key:       k.String(),
			Nu:        k.Nu,
			Requests:  len(set.Requests),
			Scenarios: set.DrawCount(),
		}
		if entry.Scenarios > 0 {
			entry.Weight = 1.0 / float64(entry.Scenarios)
		}
		r.ScenarioSets = append(r.ScenarioSets, entry)
	}

	return r
}

func lessInstanceKey(a, b ssnd.InstanceKey) bool {
	if a.Nodes != b.Nodes {
		return a.Nodes < b.Nodes
	}
	if a.Requests != b.Requests {
		return a.Requests < b.Requests
	}
	if a.Frequency != b.Frequency {
		return a.Frequency < b.Frequency
	}
	return a.ServiceCapacity < b.ServiceCapacity
}

// WriteYAML marshals the report to w.
func (r *DatasetReport) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling dataset report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing dataset report: %w", err)
	}
	return nil
}
