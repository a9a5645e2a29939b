package ssnd

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalInstanceLines is a complete 2-node instance with one service leg
// (0 -> 1, departure 0, arrival 10, capacity 5) and one demand request
// (0 -> 1, volume 3). Tests index into it to truncate or corrupt specific
// lines.
func minimalInstanceLines() []string {
	return []string{
		"Name ins_N2_K1_Freq1_sCap5",                                       // 1
		"NodeSize 2",                                                       // 2
		"TimePeriods [0, 5, 10]",                                           // 3
		"RequestSize 1",                                                    // 4
		"ServiceNoPerArc 1",                                                // 5
		"ServiceCapacity 5",                                                // 6
		"FastServiceRatio 0.5",                                             // 7
		"RevenueRange ((10, 20), (5, 15))",                                 // 8
		"ReqDemandRange (1, 10)",                                           // 9
		"ServiceCost 100",                                                  // 10
		"Trans/HoldingCost (2, 1)",                                         // 11
		"Arcs [(0, 1), (1, 0)]",                                            // 12
		"",                                                                 // 13
		"serviceID\tServices\torigin\talpha\tdestination\tbeta\tTranCost\tfs", // 14
		"0\t((0, 0), (1, 10))\t0\t0\t1\t10\t2\t100",                        // 15
		"",                                                                 // 16
		"reqs\torigins\tdestinations\talphas\tbetas\tcontract_based\trhos\tws", // 17
		"0\t0\t1\t0\t10\tTrue\t12.5\t3",                                    // 18
		"",                                                                 // 19
		"HoldingArcs\tHoldingCost",                                         // 20
		"((0, 0), (0, 5))\t1",                                              // 21
		"",                                                                 // 22
		"reqs\ttimes\talphaPsi\tbetaPsi",                                   // 23
		"0\t5\t1.5\t2.5",                                                   // 24
		"",                                                                 // 25
		"TimeNodes\tExecArcsIn",                                            // 26
		"(0, 0)\t",                                                         // 27
		"(1, 10)\t[((0, 0), (1, 10))]",                                     // 28
		"",                                                                 // 29
		"TimeNodes\tExecArcsOut",                                           // 30
		"(0, 0)\t[((0, 0), (1, 10))]",                                      // 31
	}
}

func minimalInstanceText() string {
	return strings.Join(minimalInstanceLines(), "\n") + "\n"
}

func TestParseInstance_Minimal_AllSections(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)

	assert.Equal(t, "ins_N2_K1_Freq1_sCap5", inst.Name)
	assert.Equal(t, 2, inst.NodeSize)
	assert.Equal(t, []int{0, 5, 10}, inst.TimePeriods)
	assert.Equal(t, 1, inst.RequestSize)
	assert.Equal(t, 5, inst.ServiceCapacity)
	assert.Equal(t, 0.5, inst.FastServiceRatio)
	assert.Equal(t, Range{Low: 10, High: 20}, inst.ContractRevenue)
	assert.Equal(t, Range{Low: 5, High: 15}, inst.SpotRevenue)
	assert.Equal(t, Range{Low: 1, High: 10}, inst.DemandRange)
	assert.Equal(t, 2, inst.TransCost)
	assert.Equal(t, 1, inst.HoldingCost)
	assert.Equal(t, []Arc{{From: 0, To: 1}, {From: 1, To: 0}}, inst.PhysicalArcs)

	require.Len(t, inst.Services, 1)
	leg := inst.Services[0]
	assert.Equal(t, 0, leg.Origin)
	assert.Equal(t, 1, leg.Destination)
	assert.Equal(t, 0, leg.Departure)
	assert.Equal(t, 10, leg.Arrival)
	assert.Equal(t, 5.0, leg.Capacity)
	assert.Equal(t, 2.0, leg.VariableCost)
	assert.Equal(t, 100.0, leg.FixedCost)

	require.Len(t, inst.Requests, 1)
	req := inst.Requests[0]
	assert.Equal(t, 0, req.Origin)
	assert.Equal(t, 1, req.Destination)
	assert.Equal(t, 3, req.Volume)
	assert.True(t, req.Contract)
	assert.Equal(t, 12.5, req.Revenue)

	require.Len(t, inst.HoldingArcs, 1)
	assert.Equal(t, 1.0, inst.HoldingArcs[0].Cost)
	require.Len(t, inst.Penalties, 1)
	assert.Equal(t, TimePenalty{Request: 0, Time: 5, Early: 1.5, Late: 2.5}, inst.Penalties[0])

	assert.Empty(t, inst.ExecIn[TimedNode{Node: 0, Time: 0}])
	assert.Len(t, inst.ExecIn[TimedNode{Node: 1, Time: 10}], 1)
	assert.Len(t, inst.ExecOut[TimedNode{Node: 0, Time: 0}], 1)

	require.NoError(t, inst.Validate())
}

func TestParseInstance_OptionalTablesAbsent(t *testing.T) {
	// Only header, arcs, SERVICES and REQS: the loader must not demand the
	// trailing tables.
	text := strings.Join(minimalInstanceLines()[:19], "\n") + "\n"
	inst, err := ParseInstance(strings.NewReader(text))
	require.NoError(t, err)
	assert.Len(t, inst.Services, 1)
	assert.Len(t, inst.Requests, 1)
	assert.Empty(t, inst.HoldingArcs)
	assert.Empty(t, inst.Penalties)
	assert.Empty(t, inst.ExecIn)
}

func TestParseInstance_Deterministic(t *testing.T) {
	first, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)
	second, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-parsing the same input produced different instances:\n%+v\n%+v", first, second)
	}
}

func TestParseInstance_Truncation(t *testing.T) {
	lines := minimalInstanceLines()
	tests := []struct {
		name        string
		keep        int // number of leading lines kept
		wantSection Section
	}{
		{"mid header", 5, SectionHeader},
		{"before arcs line", 11, SectionHeader},
		{"after arcs, before services", 12, SectionServices},
		{"after services table, before requests", 16, SectionRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Join(lines[:tt.keep], "\n") + "\n"
			_, err := ParseInstance(strings.NewReader(text))
			var truncated *TruncatedError
			if !errors.As(err, &truncated) {
				t.Fatalf("expected *TruncatedError, got %v", err)
			}
			if truncated.Section != tt.wantSection {
				t.Errorf("section = %s, want %s", truncated.Section, tt.wantSection)
			}
		})
	}
}

func TestParseInstance_CorruptField_NamesLine(t *testing.T) {
	tests := []struct {
		name        string
		line        int // 1-based line to corrupt
		replacement string
		wantSection Section
	}{
		{"non-numeric node size", 2, "NodeSize two", SectionHeader},
		{"bad time periods literal", 3, "TimePeriods [0, 5, x]", SectionHeader},
		{"non-numeric service cost", 15, "0\t((0, 0), (1, 10))\t0\t0\t1\t10\tabc\t100", SectionServices},
		{"short service row", 15, "0\t((0, 0), (1, 10))\t0\t0\t1\t10\t2", SectionServices},
		{"non-numeric request volume", 18, "0\t0\t1\t0\t10\tTrue\t12.5\tthree", SectionRequests},
		{"bad contract flag", 18, "0\t0\t1\t0\t10\tmaybe\t12.5\t3", SectionRequests},
		{"bad holding arc", 21, "((0, 0), 5)\t1", SectionHolding},
		{"bad penalty", 24, "0\t5\t1.5\tbad", SectionPenalties},
		{"bad exec time node", 27, "(0)\t", SectionExecIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := minimalInstanceLines()
			lines[tt.line-1] = tt.replacement
			_, err := ParseInstance(strings.NewReader(strings.Join(lines, "\n") + "\n"))
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedError, got %v", err)
			}
			if malformed.Line != tt.line {
				t.Errorf("line = %d, want %d", malformed.Line, tt.line)
			}
			if malformed.Section != tt.wantSection {
				t.Errorf("section = %s, want %s", malformed.Section, tt.wantSection)
			}
		})
	}
}

func TestParseInstance_InvariantViolations(t *testing.T) {
	tests := []struct {
		name        string
		line        int
		replacement string
	}{
		{"departure not before arrival", 15, "0\t((0, 10), (1, 0))\t0\t10\t1\t0\t2\t100"},
		{"self-loop service", 15, "0\t((0, 0), (0, 10))\t0\t0\t0\t10\t2\t100"},
		{"dangling service node", 15, "0\t((0, 0), (5, 10))\t0\t0\t5\t10\t2\t100"},
		{"dangling request node", 18, "0\t0\t7\t0\t10\tTrue\t12.5\t3"},
		{"request release after due", 18, "0\t0\t1\t10\t0\tTrue\t12.5\t3"},
		{"arc disagrees with flat columns", 15, "0\t((0, 0), (1, 10))\t0\t0\t1\t9\t2\t100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := minimalInstanceLines()
			lines[tt.line-1] = tt.replacement
			_, err := ParseInstance(strings.NewReader(strings.Join(lines, "\n") + "\n"))
			var malformed *MalformedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedError, got %v", err)
			}
			if malformed.Line != tt.line {
				t.Errorf("line = %d, want %d", malformed.Line, tt.line)
			}
		})
	}
}

func TestParseInstance_MissingHeaderKey(t *testing.T) {
	lines := minimalInstanceLines()
	// Drop the ServiceCapacity line entirely.
	lines = append(lines[:5], lines[6:]...)
	_, err := ParseInstance(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, SectionHeader, malformed.Section)
	assert.Contains(t, malformed.Reason, "ServiceCapacity")
}

func TestParseInstance_EmptyInput(t *testing.T) {
	_, err := ParseInstance(strings.NewReader(""))
	var truncated *TruncatedError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, SectionHeader, truncated.Section)
}

func TestParseInstance_CRLFInput(t *testing.T) {
	text := strings.Join(minimalInstanceLines(), "\r\n") + "\r\n"
	inst, err := ParseInstance(strings.NewReader(text))
	require.NoError(t, err)
	assert.Len(t, inst.Services, 1)
}

func TestParseInstance_WindowsAndUnixAgree(t *testing.T) {
	unix, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)
	windows, err := ParseInstance(strings.NewReader(strings.Join(minimalInstanceLines(), "\r\n")))
	require.NoError(t, err)
	assert.Equal(t, unix, windows)
}
