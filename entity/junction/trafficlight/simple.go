package trafficlight

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/randengine"
)

// Constant 恒定相位策略，所有路口始终保持同一相位
type Constant struct {
	phase []int8
}

func NewConstant(intersections int32, phase int8) *Constant {
	p := &Constant{phase: make([]int8, intersections)}
	for j := range p.phase {
		p.phase[j] = phase
	}
	return p
}

func (p *Constant) Reset() {}

func (p *Constant) Decide(obs []int32) []int8 {
	return p.phase
}

// Random 随机相位策略，每步每个路口独立等概率选择相位
// 说明：Reset后以相同种子重新开始，保证可复现
type Random struct {
	seed      uint64
	generator *randengine.Engine
	phase     []int8
}

func NewRandom(intersections int32, seed uint64) *Random {
	p := &Random{seed: seed, phase: make([]int8, intersections)}
	p.Reset()
	return p
}

func (p *Random) Reset() {
	p.generator = randengine.New(p.seed)
}

func (p *Random) Decide(obs []int32) []int8 {
	for j := range p.phase {
		if p.generator.PTrue(0.5) {
			p.phase[j] = 1
		} else {
			p.phase[j] = 0
		}
	}
	return p.phase
}
