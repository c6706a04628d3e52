package junction_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/lane"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/road"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/vehicle"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

// 1x1网格：0东(→5) 1西(→7) 2北(→6) 3南(→4)，东西向道路属于相位1
func setup(t *testing.T) (*road.Network, *lane.LaneManager, *junction.Controller) {
	net, err := road.New(1, 1, 1, 0)
	require.NoError(t, err)
	return net, lane.NewManager(net, 10), junction.NewController(net)
}

func TestControllerApply(t *testing.T) {
	_, lanes, c := setup(t)
	c.Apply(lanes.Lanes())
	assert.Equal(t, mathutil.INF, lanes.Get(0).Sentinel())
	assert.Equal(t, mathutil.INF, lanes.Get(1).Sentinel())
	assert.Equal(t, 1.0, lanes.Get(2).Sentinel())
	assert.Equal(t, 1.0, lanes.Get(3).Sentinel())
	assert.True(t, c.Matches(2))
	assert.False(t, c.Matches(0))
	assert.False(t, c.Matches(5))

	// 下游非空时以下游队尾为前车
	lanes.Get(5).Add(vehicle.FromArchetype(config.DefaultArchetypes[0]))
	lanes.Get(5).Add(vehicle.FromArchetype(config.DefaultArchetypes[0]))
	c.Apply(lanes.Lanes())
	assert.InDelta(t, 1-0.09, lanes.Get(0).Sentinel(), 1e-12)

	require.NoError(t, c.SetPhase([]int8{1}))
	c.Apply(lanes.Lanes())
	assert.Equal(t, 1.0, lanes.Get(0).Sentinel())
	assert.Equal(t, mathutil.INF, lanes.Get(2).Sentinel())
	// 边界道路不受影响
	for e := int32(4); e < 8; e++ {
		assert.Equal(t, mathutil.INF, lanes.Get(e).Sentinel())
	}
}

func TestControllerSetPhaseRejects(t *testing.T) {
	_, _, c := setup(t)
	require.NoError(t, c.SetPhase([]int8{1}))
	assert.ErrorIs(t, c.SetPhase([]int8{0, 1}), junction.ErrInvalidPhase)
	assert.ErrorIs(t, c.SetPhase([]int8{2}), junction.ErrInvalidPhase)
	assert.ErrorIs(t, c.SetPhase([]int8{-1}), junction.ErrInvalidPhase)
	assert.Equal(t, []int8{1}, c.Phase())
	c.Reset()
	assert.Equal(t, []int8{0}, c.Phase())
}
