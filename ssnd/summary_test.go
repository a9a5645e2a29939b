package ssnd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)

	s := Summarize(inst)
	assert.Equal(t, "ins_N2_K1_Freq1_sCap5", s.Name)
	assert.Equal(t, 2, s.Nodes)
	assert.Equal(t, 3, s.Periods)
	assert.Equal(t, 10, s.Horizon)
	assert.Equal(t, 2, s.PhysicalArcs)
	assert.Equal(t, 1, s.Services)
	assert.Equal(t, 1, s.Requests)
	assert.Equal(t, 1, s.ContractRequests)
	assert.Equal(t, 1, s.HoldingArcs)
	assert.Equal(t, 1, s.Penalties)
	assert.Equal(t, 10.0, s.MeanLegDuration)
	assert.Equal(t, 5.0, s.TotalCapacity)
	assert.Equal(t, 3, s.TotalBaseDemand)
}

func TestSummarize_Nil(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, &InstanceSummary{}, s)
}

func TestSummarize_NoServices(t *testing.T) {
	s := Summarize(&Instance{Name: "empty", NodeSize: 2, TimePeriods: []int{0}})
	assert.Equal(t, 0.0, s.MeanLegDuration)
	assert.Equal(t, 0, s.Services)
}
