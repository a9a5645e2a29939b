package ssnd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInstance() *Instance {
	return &Instance{
		Name:        "test",
		NodeSize:    3,
		TimePeriods: []int{0, 5, 10},
		Services: []ServiceLeg{{
			ID: 0, Origin: 0, Departure: 0, Destination: 1, Arrival: 5,
			Leg:      ServiceArc{From: TimedNode{0, 0}, To: TimedNode{1, 5}},
			Capacity: 5,
		}},
		Requests: []DemandRequest{{
			ID: 0, Origin: 0, Destination: 2, Release: 0, Due: 10, Volume: 3,
		}},
	}
}

func TestInstanceValidate(t *testing.T) {
	require.NoError(t, validInstance().Validate())

	tests := []struct {
		name   string
		mutate func(*Instance)
	}{
		{"zero node size", func(i *Instance) { i.NodeSize = 0 }},
		{"empty horizon", func(i *Instance) { i.TimePeriods = nil }},
		{"service self loop", func(i *Instance) { i.Services[0].Destination = 0 }},
		{"service node out of range", func(i *Instance) { i.Services[0].Destination = 9 }},
		{"service departure at arrival", func(i *Instance) { i.Services[0].Departure = 5 }},
		{"service zero capacity", func(i *Instance) { i.Services[0].Capacity = 0 }},
		{"request node out of range", func(i *Instance) { i.Requests[0].Origin = -1 }},
		{"request window inverted", func(i *Instance) { i.Requests[0].Release = 11 }},
		{"request negative volume", func(i *Instance) { i.Requests[0].Volume = -1 }},
		{"physical arc self loop", func(i *Instance) { i.PhysicalArcs = []Arc{{1, 1}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := validInstance()
			tt.mutate(inst)
			if err := inst.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestInstanceAccessors(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)

	assert.Equal(t, 10, inst.Horizon())
	require.NotNil(t, inst.ServiceByID(0))
	assert.Nil(t, inst.ServiceByID(99))
	require.NotNil(t, inst.RequestByID(0))
	assert.Nil(t, inst.RequestByID(99))

	tns := inst.TimedNodes()
	assert.Len(t, tns, 6) // 2 nodes x 3 periods
	assert.Equal(t, TimedNode{Node: 0, Time: 0}, tns[0])
	assert.Equal(t, TimedNode{Node: 1, Time: 10}, tns[5])
}

func TestHorizon_Empty(t *testing.T) {
	inst := &Instance{}
	assert.Equal(t, 0, inst.Horizon())
}

// Referential integrity over a full parse: every node referenced by a
// service or request exists in the instance's node range.
func TestParsedInstance_ReferentialIntegrity(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(minimalInstanceText()))
	require.NoError(t, err)

	for _, s := range inst.Services {
		assert.GreaterOrEqual(t, s.Origin, 0)
		assert.Less(t, s.Origin, inst.NodeSize)
		assert.GreaterOrEqual(t, s.Destination, 0)
		assert.Less(t, s.Destination, inst.NodeSize)
		assert.Less(t, s.Departure, s.Arrival)
	}
	for _, r := range inst.Requests {
		assert.GreaterOrEqual(t, r.Origin, 0)
		assert.Less(t, r.Origin, inst.NodeSize)
		assert.GreaterOrEqual(t, r.Destination, 0)
		assert.Less(t, r.Destination, inst.NodeSize)
	}
}
