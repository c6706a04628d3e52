package vehicle

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

// Car 单辆车的状态（9个字段）
type Car struct {
	X        float64 // 在道路上的位置
	V        float64 // 速度
	Length   float64 // 车长
	MaxA     float64 // 最大加速度
	Delta    float64 // 加速度指数
	V0       float64 // 期望速度
	ComfortB float64 // 舒适减速度
	Headway  float64 // 安全车头时距
	MinGap   float64 // 最小车距
}

// FromArchetype 由车辆原型生成新车，位置为0
func FromArchetype(a config.Archetype) Car {
	return Car{
		V:        a.V,
		Length:   a.Length,
		MaxA:     a.MaxA,
		Delta:    a.Delta,
		V0:       a.V0,
		ComfortB: a.ComfortB,
		Headway:  a.Headway,
		MinGap:   a.MinGap,
	}
}

// Catalog 车辆原型目录
func Catalog(archetypes []config.Archetype) []Car {
	return lo.Map(archetypes, func(a config.Archetype, _ int) Car { return FromArchetype(a) })
}

// Columns 按列存储的车辆状态（structure of arrays）
// 功能：每个字段一列，所有列等长，下标即环形缓冲区槽位
// 说明：热路径上直接按下标读写，不产生任何分配
type Columns struct {
	X        []float64
	V        []float64
	Length   []float64
	MaxA     []float64
	Delta    []float64
	V0       []float64
	ComfortB []float64
	Headway  []float64
	MinGap   []float64
}

// NewColumns 创建n个槽位的列存储
func NewColumns(n int) Columns {
	return Columns{
		X:        make([]float64, n),
		V:        make([]float64, n),
		Length:   make([]float64, n),
		MaxA:     make([]float64, n),
		Delta:    make([]float64, n),
		V0:       make([]float64, n),
		ComfortB: make([]float64, n),
		Headway:  make([]float64, n),
		MinGap:   make([]float64, n),
	}
}

// Len 槽位数
func (c *Columns) Len() int {
	return len(c.X)
}

// Get 读出槽位i的车辆
func (c *Columns) Get(i int32) Car {
	return Car{
		X:        c.X[i],
		V:        c.V[i],
		Length:   c.Length[i],
		MaxA:     c.MaxA[i],
		Delta:    c.Delta[i],
		V0:       c.V0[i],
		ComfortB: c.ComfortB[i],
		Headway:  c.Headway[i],
		MinGap:   c.MinGap[i],
	}
}

// Set 将车辆写入槽位i
func (c *Columns) Set(i int32, car Car) {
	c.X[i] = car.X
	c.V[i] = car.V
	c.Length[i] = car.Length
	c.MaxA[i] = car.MaxA
	c.Delta[i] = car.Delta
	c.V0[i] = car.V0
	c.ComfortB[i] = car.ComfortB
	c.Headway[i] = car.Headway
	c.MinGap[i] = car.MinGap
}

// Copy 将槽位src的全部字段复制到槽位dst
func (c *Columns) Copy(dst, src int32) {
	c.X[dst] = c.X[src]
	c.V[dst] = c.V[src]
	c.Length[dst] = c.Length[src]
	c.MaxA[dst] = c.MaxA[src]
	c.Delta[dst] = c.Delta[src]
	c.V0[dst] = c.V0[src]
	c.ComfortB[dst] = c.ComfortB[src]
	c.Headway[dst] = c.Headway[src]
	c.MinGap[dst] = c.MinGap[src]
}

// Clear 槽位i全部字段清零
func (c *Columns) Clear(i int32) {
	c.Set(i, Car{})
}
