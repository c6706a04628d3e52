package gymenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/road"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/gymenv"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/task"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

func newEnv(t *testing.T, total int32) *gymenv.Env {
	rc, err := config.NewRuntimeConfig(config.Config{
		Grid: config.Grid{M: 2, N: 2, RoadLength: 1},
		Control: config.Control{
			Step:          config.ControlStep{Total: total, Interval: 0.1},
			CarsPerSecond: 5,
			Capacity:      12,
			Seed:          1,
		},
	})
	require.NoError(t, err)
	net, err := road.New(2, 2, 1, 0)
	require.NoError(t, err)
	return gymenv.New(task.New(net, rc))
}

func TestEnvSpaces(t *testing.T) {
	env := newEnv(t, 100)
	assert.Equal(t, gymenv.MultiBinary{N: 4}, env.ActionSpace())
	assert.Equal(t, gymenv.Box{Low: 0, High: 10, Shape: []int32{16}}, env.ObservationSpace())
	assert.Equal(t, []int8{0, 0, 0, 0}, env.ZeroAction())
}

func TestEnvStep(t *testing.T) {
	env := newEnv(t, 3)
	obs := env.Reset()
	assert.Len(t, obs, 16)
	for i := range 3 {
		obs, reward, done, info, err := env.Step([]int8{1, 1, 0, 0})
		require.NoError(t, err)
		assert.Len(t, obs, 16)
		assert.Len(t, reward, 4)
		assert.False(t, done)
		assert.Equal(t, i == 2, info["truncated"])
		assert.Equal(t, int32(i+1), info["step"])
	}
	_, _, _, _, err := env.Step([]int8{1})
	assert.ErrorIs(t, err, junction.ErrInvalidPhase)
}

func TestHistoryEnv(t *testing.T) {
	env := newEnv(t, 0)
	h := gymenv.NewHistoryEnv(env, 3)
	assert.Equal(t, []int32{3, 16}, h.ObservationSpace().Shape)

	obs, err := h.Reset()
	require.NoError(t, err)
	require.Len(t, obs, 3)
	assert.Equal(t, make([]int32, 16), obs[0])
	assert.Equal(t, int32(2), env.Context().Clock().Elapsed())
	assert.Equal(t, env.Context().Observation(), obs[2])

	prev := obs
	for range 20 {
		obs, reward, _, _, err := h.Step([]int8{0, 1, 0, 1})
		require.NoError(t, err)
		require.Len(t, obs, 3)
		assert.Len(t, reward, 4)
		assert.Equal(t, prev[1], obs[0])
		assert.Equal(t, prev[2], obs[1])
		assert.Equal(t, env.Context().Observation(), obs[2])
		prev = obs
	}

	_, _, _, _, err = h.Step(nil)
	assert.Error(t, err)
}
