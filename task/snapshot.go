package task

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/lane"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/vehicle"
)

// CarView 渲染用的车辆状态
type CarView struct {
	X      float64 `json:"x"`
	V      float64 `json:"v"`
	Length float64 `json:"length"`
}

// RoadView 渲染用的道路状态，车辆按从前到后排列
type RoadView struct {
	ID         int32     `json:"id"`
	PhaseMatch bool      `json:"phase_match"`
	Cars       []CarView `json:"cars"`
}

// Snapshot 仿真状态的只读副本
type Snapshot struct {
	Step  int32      `json:"step"`
	T     float64    `json:"t"`
	Phase []int8     `json:"phase"`
	Roads []RoadView `json:"roads"`
	Stats Stats      `json:"stats"`
}

// Snapshot 复制当前仿真状态
// 功能：供渲染与外部观察使用，返回值与内部状态不共享内存
func (ctx *Context) Snapshot() Snapshot {
	lanes := ctx.laneManager.Lanes()
	snap := Snapshot{
		Step:  ctx.clock.InternalStep,
		T:     ctx.clock.T,
		Phase: append([]int8(nil), ctx.controller.Phase()...),
		Roads: make([]RoadView, len(lanes)),
		Stats: ctx.stats,
	}
	for i, l := range lanes {
		snap.Roads[i] = ctx.roadView(l)
	}
	return snap
}

func (ctx *Context) roadView(l *lane.Lane) RoadView {
	view := RoadView{
		ID:         l.ID(),
		PhaseMatch: ctx.controller.Matches(l.ID()),
		Cars:       make([]CarView, 0, l.Len()),
	}
	l.Each(func(car vehicle.Car) {
		view.Cars = append(view.Cars, CarView{X: car.X, V: car.V, Length: car.Length})
	})
	return view
}
