package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/road"
)

var (
	_ junction.IPhasePolicy = (*trafficlight.FixedCycle)(nil)
	_ junction.IPhasePolicy = (*trafficlight.MaxPressure)(nil)
)

func TestFixedCycle(t *testing.T) {
	p := trafficlight.NewFixedCycle(1, 3, false)
	got := []int8{}
	for range 7 {
		got = append(got, p.Decide(nil)[0])
	}
	assert.Equal(t, []int8{0, 0, 0, 1, 1, 1, 0}, got)

	p.Reset()
	assert.Equal(t, []int8{0}, p.Decide(nil))

	s := trafficlight.NewFixedCycle(3, 1, true)
	assert.Equal(t, []int8{0, 1, 0}, s.Decide(nil))
	assert.Equal(t, []int8{1, 0, 1}, s.Decide(nil))
}

func TestMaxPressure(t *testing.T) {
	net, err := road.New(1, 1, 1, 0)
	require.NoError(t, err)
	p := trafficlight.NewMaxPressure(net, 1, 2)

	// 南北向道路排队，相位1放行南北向
	obs := []int32{0, 0, 5, 5}
	got := []int8{}
	for range 5 {
		got = append(got, p.Decide(obs)[0])
	}
	assert.Equal(t, []int8{1, 1, 1, 0, 1}, got)

	p.Reset()
	obs = []int32{4, 0, 0, 0}
	assert.Equal(t, []int8{0}, p.Decide(obs))
}

func TestMaxPressureHoldsPhase(t *testing.T) {
	net, err := road.New(2, 2, 1, 0)
	require.NoError(t, err)
	p := trafficlight.NewMaxPressure(net, 4, 10)
	obs := make([]int32, net.TrainRoads())
	obs[net.Intersections()*road.North] = 6
	for range 3 {
		assert.Equal(t, []int8{0, 0, 0, 0}, p.Decide(obs))
	}
	assert.Equal(t, []int8{1, 0, 0, 0}, p.Decide(obs))
}

func TestConstantAndRandom(t *testing.T) {
	c := trafficlight.NewConstant(3, 1)
	assert.Equal(t, []int8{1, 1, 1}, c.Decide(nil))

	r := trafficlight.NewRandom(50, 4)
	first := append([]int8(nil), r.Decide(nil)...)
	ones := 0
	for _, p := range first {
		assert.Contains(t, []int8{0, 1}, p)
		ones += int(p)
	}
	assert.True(t, ones > 0 && ones < 50)
	r.Reset()
	assert.Equal(t, first, r.Decide(nil))
}
