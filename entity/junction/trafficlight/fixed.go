// 提供相位策略：固定周期与最大压力
package trafficlight

// FixedCycle 固定周期相位策略
// 功能：每个路口每lightTicks步在两个相位之间切换一次
// 说明：staggered为true时，编号为奇数的路口从相位1开始，相邻路口错开
type FixedCycle struct {
	lightTicks int32
	staggered  bool

	tick  int32
	phase []int8
}

// NewFixedCycle 创建固定周期相位策略
// 参数：intersections-路口数，lightTicks-每个相位持续的步数（不小于1），staggered-是否错开相邻路口
// 返回：相位策略指针
func NewFixedCycle(intersections, lightTicks int32, staggered bool) *FixedCycle {
	if lightTicks < 1 {
		log.Panicf("fixed cycle: light ticks %d < 1", lightTicks)
	}
	p := &FixedCycle{
		lightTicks: lightTicks,
		staggered:  staggered,
		phase:      make([]int8, intersections),
	}
	p.Reset()
	return p
}

func (p *FixedCycle) Reset() {
	p.tick = 0
	for j := range p.phase {
		if p.staggered {
			p.phase[j] = int8(j % 2)
		} else {
			p.phase[j] = 0
		}
	}
}

// Decide 返回本步相位，与观测无关
func (p *FixedCycle) Decide(obs []int32) []int8 {
	if p.tick > 0 && p.tick%p.lightTicks == 0 {
		for j := range p.phase {
			p.phase[j] ^= 1
		}
	}
	p.tick++
	return p.phase
}
