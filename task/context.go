package task

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/clock"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/lane"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/vehicle"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
)

// Stats 本episode的累计车辆统计
type Stats struct {
	Arrived           int64 `json:"arrived"`             // 到达过程产生的车辆
	Injected          int64 `json:"injected"`            // 通过Inject放入的车辆
	DroppedAtEntry    int64 `json:"dropped_at_entry"`    // 入口道路已满而丢弃的车辆
	DroppedInTransfer int64 `json:"dropped_in_transfer"` // 下游道路已满而丢弃的车辆
	Crossed           int64 `json:"crossed"`             // 驶过路口的车辆（计入counts）
	Exited            int64 `json:"exited"`              // 驶出路网的车辆
}

// Context 仿真实例上下文
// 功能：包含一个环境实例的全部可变状态，多个实例之间互不共享可变数据
// 说明：
//   - 路网只读，可由多个实例共享
//   - 非线程安全，一次Step是一个不可分割的操作，由调用方保证串行访问
type Context struct {
	network       entity.IRoadNetwork
	runtimeConfig *config.RuntimeConfig

	// 时钟
	clock *clock.Clock
	// Lane管理器
	laneManager *lane.LaneManager
	// 信号控制器
	controller *junction.Controller
	// 车辆到达过程
	arrival *vehicle.Arrival

	episode uint64 // 已开始的episode数

	counts []int32 // 本步每个路口驶过的车辆数
	obs    []int32 // 每条网格内道路上的车辆数
	stats  Stats
}

// New 创建仿真实例
// 功能：按路网与运行时配置创建所有组件，返回的实例已处于重置后的状态
// 参数：network-路网，rc-运行时配置
// 返回：仿真实例
func New(network entity.IRoadNetwork, rc *config.RuntimeConfig) *Context {
	ctx := &Context{
		network:       network,
		runtimeConfig: rc,
		clock:         clock.New(rc.C.Step),
		laneManager:   lane.NewManager(network, rc.C.Capacity),
		controller:    junction.NewController(network),
		arrival: vehicle.NewArrival(
			rc.CarsPerTick(),
			vehicle.Catalog(rc.All.Archetypes),
			network.Entrypoints(),
			rc.C.Seed,
		),
		counts: make([]int32, network.Intersections()),
		obs:    make([]int32, network.TrainRoads()),
	}
	ctx.Reset()
	log.Debugf("context created: %d intersections, %d roads, capacity %d, %.3f cars/tick",
		network.Intersections(), network.Roads(), rc.C.Capacity, rc.CarsPerTick())
	return ctx
}

// Reset 开始新的episode
// 功能：清空计数与统计，相位清零，清空所有道路，时钟回到起始步
// 返回：全零观测（内部缓冲区，下一次Step或Reset时被覆盖）
// 说明：第k次重置（New中的一次记为第0次）以seed+k重新播种到达过程
func (ctx *Context) Reset() []int32 {
	clear(ctx.counts)
	clear(ctx.obs)
	ctx.stats = Stats{}
	ctx.controller.Reset()
	ctx.arrival.Reset(ctx.runtimeConfig.C.Seed + ctx.episode)
	ctx.episode++
	ctx.laneManager.Reset()
	ctx.clock.Init()
	return ctx.obs
}

func (ctx *Context) Network() entity.IRoadNetwork {
	return ctx.network
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) LaneManager() *lane.LaneManager {
	return ctx.laneManager
}

func (ctx *Context) Controller() *junction.Controller {
	return ctx.controller
}

// Observation 最近一次的观测（只读）
func (ctx *Context) Observation() []int32 {
	return ctx.obs
}

// Stats 本episode的累计统计
func (ctx *Context) Stats() Stats {
	return ctx.stats
}

// CarsOnRoads 当前所有道路（含边界道路）上的车辆数
func (ctx *Context) CarsOnRoads() int64 {
	return ctx.laneManager.Total()
}

// Truncated 是否已达到配置的episode步数，total为0时永不截断
func (ctx *Context) Truncated() bool {
	return ctx.runtimeConfig.C.Step.Total > 0 && ctx.clock.Finished()
}

// Inject 在指定道路队尾放入一辆车
// 功能：用于构造场景，车辆位置按队尾规则重新计算
// 参数：road-道路编号（非法编号直接panic），car-车辆
// 返回：是否放入成功，道路已满时返回false
func (ctx *Context) Inject(road int32, car vehicle.Car) bool {
	ctx.stats.Injected++
	if !ctx.laneManager.Get(road).Add(car) {
		ctx.stats.DroppedAtEntry++
		return false
	}
	return true
}
