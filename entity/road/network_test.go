package road_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/road"
	"gonum.org/v1/gonum/graph/topo"
)

var _ entity.IRoadNetwork = (*road.Network)(nil)

func TestNetworkCounts(t *testing.T) {
	net, err := road.New(2, 3, 1.5, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(6), net.Intersections())
	assert.Equal(t, int32(24), net.TrainRoads())
	assert.Equal(t, int32(24+2*3+2*2), net.Roads())
	assert.Equal(t, 1.5, net.Length(7))
}

func TestNetworkInvalid(t *testing.T) {
	_, err := road.New(0, 2, 1, 0)
	assert.ErrorIs(t, err, road.ErrInvalidGrid)
	_, err = road.New(2, -1, 1, 0)
	assert.ErrorIs(t, err, road.ErrInvalidGrid)
	_, err = road.New(2, 2, 0, 0)
	assert.ErrorIs(t, err, road.ErrInvalidGrid)
	_, err = road.New(2, 2, 1, road.MaskWest|road.MaskEast|road.MaskSouth|road.MaskNorth)
	assert.ErrorIs(t, err, road.ErrNoEntrypoint)
	// 道路总数超出int32范围时报配置错误而不是溢出
	_, err = road.New(100000, 100000, 1, 0)
	assert.ErrorIs(t, err, road.ErrInvalidGrid)
	_, err = road.New(1<<30, 1, 1, 0)
	assert.ErrorIs(t, err, road.ErrInvalidGrid)
}

func TestNetworkNext2x2(t *testing.T) {
	net, err := road.New(2, 2, 1, 0)
	require.NoError(t, err)
	// v=4, 边界道路从16开始：南16-17 东18-19 北20-21 西22-23
	expected := map[int32]int32{
		0: 1, 1: 18, 2: 3, 3: 19,       // 向东
		4: 22, 5: 4, 6: 23, 7: 6,       // 向西
		8: 10, 9: 11, 10: 20, 11: 21,   // 向北
		12: 16, 13: 17, 14: 12, 15: 13, // 向南
	}
	for r, nx := range expected {
		assert.Equal(t, nx, net.Next(r), "road %d", r)
	}
	for r := int32(16); r < net.Roads(); r++ {
		assert.Equal(t, int32(road.NoRoad), net.Next(r))
		assert.Equal(t, int32(road.NoIntersection), net.Dest(r))
		assert.Equal(t, int8(0), net.PhaseOf(r))
	}
	assert.Equal(t, int32(3), net.Dest(7))
	assert.Equal(t, int8(1), net.PhaseOf(5))
	assert.Equal(t, int8(0), net.PhaseOf(9))
	assert.ElementsMatch(t, []int32{16, 17, 18, 19, 20, 21, 22, 23}, net.Sinks())
}

func TestNextChainsTerminate(t *testing.T) {
	for _, dims := range [][2]int32{{1, 1}, {2, 2}, {3, 5}, {6, 1}} {
		net, err := road.New(dims[0], dims[1], 1, 0)
		require.NoError(t, err)
		for r := range net.Roads() {
			cur := r
			steps := int32(0)
			for cur != road.NoRoad {
				cur = net.Next(cur)
				steps++
				require.LessOrEqual(t, steps, net.TrainRoads(), "road %d of %v", r, dims)
			}
		}
	}
}

func TestEntrypoints(t *testing.T) {
	net, err := road.New(2, 3, 1, 0)
	require.NoError(t, err)
	// v=6：西侧0,3 东侧8,11 南侧12,13,14 北侧21,22,23
	assert.Equal(t, []int32{0, 3, 8, 11, 12, 13, 14, 21, 22, 23}, net.Entrypoints())
	for _, r := range net.Entrypoints() {
		assert.True(t, net.IsTrainRoad(r))
	}

	net, err = road.New(2, 3, 1, road.MaskEast|road.MaskNorth)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 3, 12, 13, 14}, net.Entrypoints())
}

func TestGraphIsAcyclic(t *testing.T) {
	net, err := road.New(3, 3, 1, 0)
	require.NoError(t, err)
	g := net.Graph()
	assert.Equal(t, int(net.Roads()), g.Nodes().Len())
	assert.Equal(t, int(net.TrainRoads()), g.Edges().Len())
	_, err = topo.Sort(g)
	assert.NoError(t, err)
}

func TestDirectionAndCheckRoad(t *testing.T) {
	net, err := road.New(1, 1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(road.South), net.Direction(3))
	assert.Equal(t, int32(-1), net.Direction(4))
	assert.NoError(t, net.CheckRoad(7))
	assert.ErrorIs(t, net.CheckRoad(8), road.ErrRoadOutOfRange)
	assert.ErrorIs(t, net.CheckRoad(-1), road.ErrRoadOutOfRange)
}
