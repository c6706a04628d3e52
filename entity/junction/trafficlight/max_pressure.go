package trafficlight

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/container"
)

// mpRuntime 单个路口的最大压力运行时状态
type mpRuntime struct {
	phase       int8  // 当前相位
	remaining   int32 // 当前相位剩余步数
	repeatCount int   // 当前相位连续延长的次数
}

// MaxPressure 最大压力相位策略
// 功能：每个相位持续phaseTicks步，结束时计算两个相位的压力，选取压力最大的相位
// 说明：
//   - 路口相位与道路所属相位不同时，该道路的车辆可以驶向下游，称该道路被放行
//   - 道路压力为该道路车辆数减去下游网格内道路车辆数（下游为边界道路时记为0）
//   - 相位压力为该相位下所有被放行的驶入道路的压力之和
type MaxPressure struct {
	network        entity.IRoadNetwork
	phaseTicks     int32
	maxRepeatCount int

	incoming [][]int32 // 路口->驶入道路
	runtime  []mpRuntime
	phase    []int8

	pressureHeap *container.PriorityQueue[int8]
}

// NewMaxPressure 创建最大压力相位策略
// 参数：network-路网，phaseTicks-相位最短持续步数（不小于1），maxRepeatCount-同一相位最多连续延长的次数
// 返回：相位策略指针
func NewMaxPressure(network entity.IRoadNetwork, phaseTicks int32, maxRepeatCount int) *MaxPressure {
	if phaseTicks < 1 {
		log.Panicf("max pressure: phase ticks %d < 1", phaseTicks)
	}
	p := &MaxPressure{
		network:        network,
		phaseTicks:     phaseTicks,
		maxRepeatCount: maxRepeatCount,
		incoming:       make([][]int32, network.Intersections()),
		runtime:        make([]mpRuntime, network.Intersections()),
		phase:          make([]int8, network.Intersections()),
		pressureHeap:   container.NewPriorityQueue[int8](),
	}
	for e := range network.TrainRoads() {
		j := network.Dest(e)
		p.incoming[j] = append(p.incoming[j], e)
	}
	p.Reset()
	return p
}

func (p *MaxPressure) Reset() {
	for j := range p.runtime {
		p.runtime[j] = mpRuntime{remaining: p.phaseTicks}
		p.phase[j] = 0
	}
}

// pressure 某路口在指定相位下的压力
func (p *MaxPressure) pressure(obs []int32, j int32, phase int8) float64 {
	sum := 0.
	for _, e := range p.incoming[j] {
		if p.network.PhaseOf(e) == phase {
			continue
		}
		sum += float64(obs[e])
		if next := p.network.Next(e); p.network.IsTrainRoad(next) {
			sum -= float64(obs[next])
		}
	}
	return sum
}

// Decide 根据观测更新每个路口的相位
// 参数：obs-各网格内道路的车辆数
// 返回：每个路口的相位
// 算法说明：
// 1. 当前相位未走完，保持不变
// 2. 走完后计算两个相位的压力，压力最大者优先（压力相同时保持当前相位）
// 3. 最大压力相位未变化且未达到最大延长次数，则延长当前相位，否则切换到另一个相位
func (p *MaxPressure) Decide(obs []int32) []int8 {
	for j := range p.network.Intersections() {
		rt := &p.runtime[j]
		rt.remaining--
		if rt.remaining > 0 {
			continue
		}
		p.pressureHeap.Clear()
		p.pressureHeap.Push(rt.phase, -p.pressure(obs, j, rt.phase)) // 小顶堆，压力越大越靠前
		p.pressureHeap.Push(1-rt.phase, -p.pressure(obs, j, 1-rt.phase))
		p.pressureHeap.Heapify()
		maxPhase, _ := p.pressureHeap.HeapPop()
		if maxPhase == rt.phase {
			if rt.repeatCount >= p.maxRepeatCount {
				maxPhase, _ = p.pressureHeap.HeapPop()
			} else {
				rt.repeatCount++
			}
		}
		if maxPhase != rt.phase {
			rt.phase = maxPhase
			rt.repeatCount = 0
		}
		rt.remaining = p.phaseTicks
		p.phase[j] = rt.phase
	}
	return p.phase
}
