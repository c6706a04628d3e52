package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

func validConfig() config.Config {
	return config.Config{
		Grid: config.Grid{M: 2, N: 3, RoadLength: 1},
		Control: config.Control{
			Step:          config.ControlStep{Total: 100, Interval: 0.1},
			CarsPerSecond: 3,
		},
	}
}

func TestRuntimeConfigDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(validConfig())
	require.NoError(t, err)
	assert.Equal(t, int32(config.DefaultCapacity), rc.C.Capacity)
	assert.Equal(t, config.DefaultArchetypes, rc.All.Archetypes)
	assert.Equal(t, config.DefaultListen, rc.All.Server.Listen)
	assert.Equal(t, 0.1, rc.All.Server.StreamInterval)
	assert.InDelta(t, 0.3, rc.CarsPerTick(), 1e-12)
}

func TestRuntimeConfigRejects(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"zero rows":       func(c *config.Config) { c.Grid.M = 0 },
		"negative cols":   func(c *config.Config) { c.Grid.N = -1 },
		"zero length":     func(c *config.Config) { c.Grid.RoadLength = 0 },
		"zero interval":   func(c *config.Config) { c.Control.Step.Interval = 0 },
		"negative rate":   func(c *config.Config) { c.Control.CarsPerSecond = -1 },
		"tiny capacity":   func(c *config.Config) { c.Control.Capacity = 2 },
		"negative stream": func(c *config.Config) { c.Server.StreamInterval = -1 },
		"bad archetype": func(c *config.Config) {
			c.Archetypes = []config.Archetype{{Name: "broken", Length: 1, MaxA: 1, Delta: 4, V0: 0, ComfortB: 1}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(&c)
			_, err := config.NewRuntimeConfig(c)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestArchetypeErrorListsFieldsInOrder(t *testing.T) {
	c := validConfig()
	c.Archetypes = []config.Archetype{{Name: "broken", Length: 0, MaxA: 0, Delta: 0, V0: 0, ComfortB: 0}}
	for range 10 {
		_, err := config.NewRuntimeConfig(c)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "[comfort_b delta length max_a v0]")
	}
}

func TestLoadStrict(t *testing.T) {
	data := []byte(`
grid: {m: 1, n: 1, road_length: 1.0, entry_side_mask: 5}
control:
  step: {start: 0, total: 50, interval: 0.1}
  cars_per_second: 2
  capacity: 8
  seed: 7
`)
	rc, err := config.Load(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), rc.All.Grid.EntrySideMask)
	assert.Equal(t, int32(8), rc.C.Capacity)
	assert.Equal(t, uint64(7), rc.C.Seed)

	_, err = config.Load([]byte("grid: {m: 1, n: 1, road_length: 1, unknown: 1}\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
