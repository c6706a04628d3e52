package junction

import (
	"errors"
	"fmt"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/lane"
)

var (
	ErrInvalidPhase = errors.New("invalid phase assignment")
)

// Controller 信号控制器
// 功能：保存每个路口当前的相位（0或1），并据此写入网格内道路的哨兵位置
// 说明：
//   - 相位与道路所属相位相同时，该道路的车辆以道路末端为前车
//   - 否则以下游道路队尾车辆为前车（位置平移一个道路长度），下游为空时前方无约束
//   - 边界道路的哨兵始终为+∞，不受控制器影响
type Controller struct {
	network entity.IRoadNetwork
	phase   []int8
}

// NewController 创建信号控制器，所有路口初始相位为0
func NewController(network entity.IRoadNetwork) *Controller {
	return &Controller{
		network: network,
		phase:   make([]int8, network.Intersections()),
	}
}

// Reset 所有路口相位清零
func (c *Controller) Reset() {
	clear(c.phase)
}

// SetPhase 记录新的相位分配
// 功能：校验长度与取值后整体替换，校验失败时保持原相位不变
// 参数：assign-每个路口的相位，长度必须等于路口数，取值只能为0或1
// 返回：错误信息
func (c *Controller) SetPhase(assign []int8) error {
	if len(assign) != len(c.phase) {
		return fmt.Errorf("%w: got %d values for %d intersections", ErrInvalidPhase, len(assign), len(c.phase))
	}
	for i, p := range assign {
		if p != 0 && p != 1 {
			return fmt.Errorf("%w: intersection %d has phase %d", ErrInvalidPhase, i, p)
		}
	}
	copy(c.phase, assign)
	return nil
}

// Phase 当前相位（只读）
func (c *Controller) Phase() []int8 {
	return c.phase
}

// Matches 道路所属相位是否与其终点路口的当前相位相同，边界道路返回false
func (c *Controller) Matches(road int32) bool {
	if !c.network.IsTrainRoad(road) {
		return false
	}
	return c.network.PhaseOf(road) == c.phase[c.network.Dest(road)]
}

// Apply 将当前相位写入所有网格内道路的哨兵
// 参数：lanes-所有道路的缓冲区，下标即道路编号
// 算法说明：
// 1. 相位相同：哨兵位置为道路长度
// 2. 相位不同且下游道路非空：哨兵位置为下游队尾车辆位置+道路长度
// 3. 其余情况：哨兵位置为+∞
func (c *Controller) Apply(lanes []*lane.Lane) {
	for e := range c.network.TrainRoads() {
		length := c.network.Length(e)
		switch next := c.network.Next(e); {
		case c.Matches(e):
			lanes[e].SetSentinel(length)
		case next >= 0 && !lanes[next].Empty():
			lanes[e].SetSentinel(lanes[next].TailX() + length)
		default:
			lanes[e].SetSentinel(mathutil.INF)
		}
	}
}
