package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

const (
	DefaultCapacity = 20 // 默认环形缓冲区槽位数
	MinCapacity     = 3  // 哨兵槽 + 回绕空槽 + 至少一辆车
	DefaultListen   = ":51102"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultArchetypes 默认车辆原型
var DefaultArchetypes = []Archetype{
	{
		Name:     "car",
		V:        0.3,
		Length:   0.08,
		MaxA:     0.02,
		Delta:    4,
		V0:       0.8,
		ComfortB: 0.06,
		Headway:  1.2,
		MinGap:   0.01,
	},
}

// RuntimeConfig 运行时配置
// 功能：经过校验并补全默认值的配置，构造后不再修改，显式传递给仿真引擎
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 校验配置并补全默认值
// 功能：创建运行时配置对象，非法配置直接返回错误
// 参数：config-原始配置对象
// 返回：运行时配置指针，错误信息
// 算法说明：
// 1. 校验路网、时间步长、到达率、容量
// 2. 补全默认容量、默认车辆原型与监听地址
// 3. 校验所有车辆原型参数为正
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	if config.Grid.M <= 0 || config.Grid.N <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, config.Grid.M, config.Grid.N)
	}
	if config.Grid.RoadLength <= 0 {
		return nil, fmt.Errorf("%w: road_length %v must be positive", ErrInvalidConfig, config.Grid.RoadLength)
	}
	if config.Control.Step.Interval <= 0 {
		return nil, fmt.Errorf("%w: step interval %v must be positive", ErrInvalidConfig, config.Control.Step.Interval)
	}
	if config.Control.Step.Start < 0 || config.Control.Step.Total < 0 {
		return nil, fmt.Errorf("%w: step start/total must not be negative", ErrInvalidConfig)
	}
	if config.Control.CarsPerSecond < 0 {
		return nil, fmt.Errorf("%w: cars_per_second %v must not be negative", ErrInvalidConfig, config.Control.CarsPerSecond)
	}
	if config.Control.Capacity == 0 {
		config.Control.Capacity = DefaultCapacity
	}
	if config.Control.Capacity < MinCapacity {
		return nil, fmt.Errorf("%w: capacity %d must be at least %d", ErrInvalidConfig, config.Control.Capacity, MinCapacity)
	}
	if config.Control.Heartbeat < 0 {
		return nil, fmt.Errorf("%w: heartbeat must not be negative", ErrInvalidConfig)
	}
	if len(config.Archetypes) == 0 {
		config.Archetypes = append([]Archetype(nil), DefaultArchetypes...)
	}
	for _, a := range config.Archetypes {
		if err := a.validate(); err != nil {
			return nil, err
		}
	}
	if config.Server.Listen == "" {
		config.Server.Listen = DefaultListen
	}
	if config.Server.StreamInterval < 0 {
		return nil, fmt.Errorf("%w: stream_interval must not be negative", ErrInvalidConfig)
	}
	if config.Server.StreamInterval == 0 {
		config.Server.StreamInterval = config.Control.Step.Interval
	}

	rc := &RuntimeConfig{}
	rc.All = config
	rc.C = config.Control
	return rc, nil
}

// Load 从YAML数据中严格解析配置（未知字段报错）
func Load(data []byte) (*RuntimeConfig, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return NewRuntimeConfig(c)
}

// CarsPerTick 每个tick期望到达的车辆数
func (rc *RuntimeConfig) CarsPerTick() float64 {
	return rc.C.CarsPerSecond * rc.C.Step.Interval
}

func (a Archetype) validate() error {
	positive := map[string]float64{
		"length":    a.Length,
		"max_a":     a.MaxA,
		"delta":     a.Delta,
		"v0":        a.V0,
		"comfort_b": a.ComfortB,
	}
	bad := lo.Filter(lo.Keys(positive), func(k string, _ int) bool { return positive[k] <= 0 })
	sort.Strings(bad)
	if len(bad) > 0 {
		return fmt.Errorf("%w: archetype %q fields %v must be positive", ErrInvalidConfig, a.Name, bad)
	}
	if a.V < 0 || a.Headway < 0 || a.MinGap < 0 {
		return fmt.Errorf("%w: archetype %q v/headway/min_gap must not be negative", ErrInvalidConfig, a.Name)
	}
	return nil
}
