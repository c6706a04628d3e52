package vehicle

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

func testCar(x, v float64) Car {
	car := FromArchetype(config.DefaultArchetypes[0])
	car.X = x
	car.V = v
	return car
}

func TestFollowFreeRoadAccelerates(t *testing.T) {
	c := NewColumns(2)
	c.X[0] = mathutil.INF
	c.Set(1, testCar(0, 0))
	c.FollowSegment(0.1, 0, 1)
	// 空路起步：dv≈a
	assert.InDelta(t, 0.02*0.1, c.V[1], 1e-6)
	assert.InDelta(t, 0.5*0.02*0.01, c.X[1], 1e-6)
}

func TestFollowNeverReverses(t *testing.T) {
	c := NewColumns(2)
	// 前车紧贴在本车前方，本车必须急刹
	c.Set(0, testCar(0.1, 0))
	c.Set(1, testCar(0.05, 0.5))
	for range 100 {
		x := c.X[1]
		c.FollowSegment(0.1, 0, 1)
		assert.GreaterOrEqual(t, c.X[1], x)
		assert.GreaterOrEqual(t, c.V[1], 0.0)
		assert.False(t, math.IsNaN(c.V[1]))
	}
}

func TestFollowStopsBeforeFixedLeader(t *testing.T) {
	c := NewColumns(2)
	c.X[0] = 1.0 // 固定在道路末端的哨兵
	c.Set(1, testCar(0, 0))
	for range 20000 {
		c.FollowSegment(0.1, 0, 1)
		c.X[0] = 1.0
		c.V[0] = 0
	}
	assert.Less(t, c.X[1], 1.0)
}

func TestFollowSegmentIsSynchronous(t *testing.T) {
	cars := []Car{{X: mathutil.INF}, testCar(0.9, 0.4), testCar(0.7, 0.6), testCar(0.5, 0.2)}

	c := NewColumns(len(cars))
	for i, car := range cars {
		c.Set(int32(i), car)
	}
	c.FollowSegment(0.1, 0, 3)

	// 逐对独立计算：每辆车都以前车更新前的状态为参照
	for i := 1; i < len(cars); i++ {
		pair := NewColumns(2)
		pair.Set(0, cars[i-1])
		pair.Set(1, cars[i])
		pair.follow(0.1, 0, 1)
		assert.Equal(t, pair.Get(1), c.Get(int32(i)), "slot %d", i)
	}
	// 前车（哨兵）不被修改
	assert.Equal(t, cars[0], c.Get(0))
}

func TestColumnsCopyAndClear(t *testing.T) {
	c := NewColumns(3)
	car := testCar(0.3, 0.2)
	c.Set(1, car)
	c.Copy(2, 1)
	assert.Equal(t, car, c.Get(2))
	c.Clear(1)
	assert.Equal(t, Car{}, c.Get(1))
	assert.Equal(t, 3, c.Len())
}
