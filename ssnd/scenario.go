// Demand scenario sets. A wScenarios file stores, per request, a baseline
// mean demand and a list of stochastic demand draws; draw column s across
// all requests forms one equiprobable demand scenario. Scenario sets are
// distributed separately from instance files so one network can be paired
// with several uncertainty levels (nu).

package ssnd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WeightTolerance bounds how far scenario probability weights may drift
// from summing to exactly 1.
const WeightTolerance = 1e-6

// ScenarioRequest holds one request's demand data in file order.
type ScenarioRequest struct {
	ID       int
	Baseline int   // mean demand (mu)
	Draws    []int // stochastic demand realizations
}

// ScenarioSet is the parsed content of one wScenarios file. The size-class
// fields mirror the filename parameters and are zero when parsing from a
// bare reader.
type ScenarioSet struct {
	Nodes           int
	MaxRequests     int
	Frequency       int
	ServiceCapacity int
	Nu              float64

	Requests []ScenarioRequest
}

// DemandScenario is one stochastic demand realization across all requests.
type DemandScenario struct {
	Index   int
	Weight  float64
	Volumes map[int]int // request id -> demand
}

// DrawCount returns the number of scenarios encoded in the set.
func (s *ScenarioSet) DrawCount() int {
	if len(s.Requests) == 0 {
		return 0
	}
	return len(s.Requests[0].Draws)
}

// Baseline returns the mean demand of a request id.
func (s *ScenarioSet) Baseline(id int) (int, bool) {
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			return s.Requests[i].Baseline, true
		}
	}
	return 0, false
}

// Scenarios materializes the equiprobable demand scenarios. Each scenario
// carries weight 1/DrawCount; the weights therefore sum to 1 up to
// floating-point rounding, which Validate checks explicitly.
func (s *ScenarioSet) Scenarios() []DemandScenario {
	count := s.DrawCount()
	if count == 0 {
		return nil
	}
	weight := 1.0 / float64(count)
	out := make([]DemandScenario, count)
	for i := 0; i < count; i++ {
		volumes := make(map[int]int, len(s.Requests))
		for _, req := range s.Requests {
			volumes[req.ID] = req.Draws[i]
		}
		out[i] = DemandScenario{Index: i, Weight: weight, Volumes: volumes}
	}
	return out
}

// Validate checks that every request carries the same number of draws and
// that the implied scenario weights sum to 1 within WeightTolerance.
func (s *ScenarioSet) Validate() error {
	count := s.DrawCount()
	for i := range s.Requests {
		if len(s.Requests[i].Draws) != count {
			return &InconsistentScenarioError{
				Reason: fmt.Sprintf("request %d has %d demand draws, request %d has %d",
					s.Requests[0].ID, count, s.Requests[i].ID, len(s.Requests[i].Draws)),
			}
		}
	}
	if count == 0 {
		return nil
	}
	return CheckWeights(s.Scenarios())
}

// CheckWeights verifies that scenario probability weights sum to 1 within
// WeightTolerance.
func CheckWeights(scenarios []DemandScenario) error {
	sum := 0.0
	for _, sc := range scenarios {
		sum += sc.Weight
	}
	if diff := sum - 1.0; diff > WeightTolerance || diff < -WeightTolerance {
		return &InconsistentScenarioError{
			Reason: fmt.Sprintf("scenario weights sum to %.9f, want 1 within %g", sum, WeightTolerance),
		}
	}
	return nil
}

// LoadScenarioSet opens and parses one wScenarios file, recovering the
// size-class parameters from the filename when it follows the dataset
// naming convention.
func LoadScenarioSet(path string) (*ScenarioSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario set %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	set, err := ParseScenarioSet(f)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario set %s: %w", path, err)
	}
	if key, ok := MatchScenarioFilename(filepath.Base(path)); ok {
		set.Nodes = key.Nodes
		set.MaxRequests = key.Requests
		set.Frequency = key.Frequency
		set.ServiceCapacity = key.ServiceCapacity
		set.Nu = key.Nu
	}
	return set, nil
}

// ParseScenarioSet reads one wScenarios file from r: the reqs/ws/rnd_ws
// header row, then one tab-separated row per request with the demand draws
// separated by semicolons.
func ParseScenarioSet(r io.Reader) (*ScenarioSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	set := &ScenarioSet{}
	line := 0
	sawHeader := false
	for scanner.Scan() {
		line++
		ln := strings.TrimRight(scanner.Text(), "\r")
		if ln == "" {
			continue
		}
		if !sawHeader {
			if ln != scenariosHeaderRow {
				return nil, malformed(SectionScenarios, line, ln, "expected table header %q", scenariosHeaderRow)
			}
			sawHeader = true
			continue
		}
		req, err := scenarioRow(line, ln)
		if err != nil {
			return nil, err
		}
		if len(set.Requests) > 0 && len(req.Draws) != len(set.Requests[0].Draws) {
			return nil, &InconsistentScenarioError{
				Line: line,
				Reason: fmt.Sprintf("request %d has %d demand draws, request %d has %d",
					req.ID, len(req.Draws), set.Requests[0].ID, len(set.Requests[0].Draws)),
			}
		}
		set.Requests = append(set.Requests, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scenario input: %w", err)
	}
	if !sawHeader || len(set.Requests) == 0 {
		return nil, &TruncatedError{Section: SectionScenarios, Line: line}
	}
	if err := CheckWeights(set.Scenarios()); err != nil {
		return nil, err
	}
	return set, nil
}

func scenarioRow(line int, ln string) (ScenarioRequest, error) {
	fields := strings.Split(ln, "\t")
	if len(fields) != 3 {
		return ScenarioRequest{}, malformed(SectionScenarios, line, ln,
			"expected 3 tab-separated fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return ScenarioRequest{}, malformed(SectionScenarios, line, ln, "request id %q is not an integer", fields[0])
	}
	baseline, err := strconv.Atoi(fields[1])
	if err != nil {
		return ScenarioRequest{}, malformed(SectionScenarios, line, ln, "baseline demand %q is not an integer", fields[1])
	}
	var draws []int
	for _, raw := range strings.Split(fields[2], ";") {
		if raw == "" {
			continue
		}
		d, err := strconv.Atoi(raw)
		if err != nil {
			return ScenarioRequest{}, malformed(SectionScenarios, line, ln, "demand draw %q is not an integer", raw)
		}
		draws = append(draws, d)
	}
	if len(draws) == 0 {
		return ScenarioRequest{}, malformed(SectionScenarios, line, ln, "request %d has no demand draws", id)
	}
	return ScenarioRequest{ID: id, Baseline: baseline, Draws: draws}, nil
}
