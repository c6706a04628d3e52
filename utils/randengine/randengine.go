// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"math"

	"golang.org/x/exp/rand"
)

// Engine 随机数引擎
// 功能：每个仿真实例独占一个引擎，保证并行episode之间互不干扰且可复现
// 说明：非线程安全，不应在多个goroutine间共享
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed))}
}

// PTrue 以指定概率返回true
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Geometric 生成{0,1,2,...}上均值为mean的几何分布随机数
// 功能：作为更新过程的间隔步数，保证长期到达率严格为1/mean
// 参数：mean-期望值，必须为正
// 返回：非负整数
// 算法说明：
// 1. 取单位指数分布随机数E
// 2. 令q=mean/(1+mean)，返回floor(E/ln(1/q))，此时P(k>=j)=q^j
// 说明：mean为+Inf时返回math.MaxInt
func (e *Engine) Geometric(mean float64) int {
	if math.IsInf(mean, 1) {
		return math.MaxInt
	}
	k := e.ExpFloat64() / math.Log1p(1/mean)
	if k >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(k)
}
