package vehicle

import (
	"math"

	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/randengine"
)

// Arrival 车辆到达过程
// 功能：更新过程，每辆车之前抽取一个几何分布的间隔步数，长期到达率为每步carsPerTick辆
// 说明：自带随机数引擎，入口道路与车辆原型均均匀抽取
type Arrival struct {
	meanGap     float64 // 平均间隔步数 1/(λ·r)
	catalog     []Car
	entrypoints []int32
	generator   *randengine.Engine

	gap    int  // 距下一辆车还需等待的步数
	primed bool // gap是否已经抽取
}

// NewArrival 创建到达过程
// 参数：carsPerTick-每步期望到达车辆数（λ·r，为0则不产生车辆），catalog-车辆原型，entrypoints-入口道路，seed-随机种子
// 返回：到达过程指针
func NewArrival(carsPerTick float64, catalog []Car, entrypoints []int32, seed uint64) *Arrival {
	if len(catalog) == 0 || len(entrypoints) == 0 {
		log.Panicf("arrival needs a non-empty catalog (%d) and entrypoints (%d)", len(catalog), len(entrypoints))
	}
	meanGap := math.Inf(1)
	if carsPerTick > 0 {
		meanGap = 1 / carsPerTick
	}
	return &Arrival{
		meanGap:     meanGap,
		catalog:     catalog,
		entrypoints: entrypoints,
		generator:   randengine.New(seed),
	}
}

// Next 取出本步的下一辆到达车辆
// 功能：在一个tick内反复调用直到ok=false，即取完本步所有到达车辆
// 返回：road-入口道路，car-新车（位置为0），ok-本步是否还有车辆
// 算法说明：
// 1. 若尚未抽取间隔，则抽取几何分布间隔k
// 2. k>0：本步结束，k减1，返回false
// 3. k=0：产生一辆车，并标记下次调用时重新抽取间隔
func (a *Arrival) Next() (road int32, car Car, ok bool) {
	if !a.primed {
		a.gap = a.generator.Geometric(a.meanGap)
		a.primed = true
	}
	if a.gap > 0 {
		a.gap--
		return 0, Car{}, false
	}
	a.primed = false
	car = a.catalog[a.generator.Intn(len(a.catalog))]
	road = a.entrypoints[a.generator.Intn(len(a.entrypoints))]
	return road, car, true
}

// Reset 用新的随机种子重新开始到达过程
func (a *Arrival) Reset(seed uint64) {
	a.generator = randengine.New(seed)
	a.gap = 0
	a.primed = false
}
