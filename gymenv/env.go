// 强化学习环境适配层：单步接口、历史观测包装、RPC服务与状态推送
package gymenv

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/task"
)

// MultiBinary N个取值为0或1的离散动作
type MultiBinary struct {
	N int32 `json:"n"`
}

// Box 整数区间观测空间
type Box struct {
	Low   int32   `json:"low"`
	High  int32   `json:"high"`
	Shape []int32 `json:"shape"`
}

// Env 单个仿真实例的环境接口
// 功能：动作即每个路口的相位，观测为每条网格内道路的车辆数，奖励为每个路口本步驶过的车辆数
// 说明：非线程安全；返回的观测与奖励切片在下一次Reset或Step时被覆盖
type Env struct {
	ctx *task.Context
}

func New(ctx *task.Context) *Env {
	return &Env{ctx: ctx}
}

func (e *Env) Context() *task.Context {
	return e.ctx
}

func (e *Env) Reset() []int32 {
	return e.ctx.Reset()
}

// Step 执行一步
// 参数：action-每个路口的相位
// 返回：obs-观测，reward-每个路口的奖励，done-恒为false，info-附加信息（step、truncated、stats），err-动作非法时的错误
func (e *Env) Step(action []int8) (obs, reward []int32, done bool, info map[string]any, err error) {
	obs, reward, done, err = e.ctx.Step(action)
	if err != nil {
		return nil, nil, false, nil, err
	}
	info = map[string]any{
		"step":      e.ctx.Clock().InternalStep,
		"truncated": e.ctx.Truncated(),
		"stats":     e.ctx.Stats(),
	}
	return obs, reward, done, info, nil
}

func (e *Env) ActionSpace() MultiBinary {
	return MultiBinary{N: e.ctx.Network().Intersections()}
}

// ObservationSpace 观测空间，每条道路最多容纳capacity-2辆车
func (e *Env) ObservationSpace() Box {
	return Box{
		Low:   0,
		High:  e.ctx.RuntimeConfig().C.Capacity - 2,
		Shape: []int32{e.ctx.Network().TrainRoads()},
	}
}

// ZeroAction 所有路口相位为0的动作
func (e *Env) ZeroAction() []int8 {
	return make([]int8, e.ctx.Network().Intersections())
}
