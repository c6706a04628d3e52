package task

import (
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/lane"
)

// Step 执行一个tick
// 功能：按给定相位推进仿真一步
// 参数：phase-每个路口的相位（0或1）
// 返回：obs-每条网格内道路上的车辆数，counts-本步每个路口驶过的车辆数，done-恒为false，err-相位非法时返回错误且状态不变
// 算法说明：
// 1. 记录相位
// 2. 信号控制器写入所有网格内道路的哨兵
// 3. 取出本步所有到达车辆，加入对应入口道路的队尾
// 4. 所有非空道路（含边界道路）执行跟车更新
// 5. 越过道路末端的车辆移入下游道路，并累计终点路口的计数
// 6. 统计观测
//
// 说明：返回的两个切片为内部缓冲区，下一次Step或Reset时被覆盖
func (ctx *Context) Step(phase []int8) (obs, counts []int32, done bool, err error) {
	if err := ctx.controller.SetPhase(phase); err != nil {
		return nil, nil, false, err
	}
	clear(ctx.counts)
	lanes := ctx.laneManager.Lanes()

	ctx.controller.Apply(lanes)
	ctx.arrive(lanes)
	ctx.laneManager.Update(ctx.clock.DT)
	ctx.transfer(lanes)
	ctx.laneManager.Occupancy(ctx.obs)

	ctx.clock.Tick()
	ctx.heartbeat()
	return ctx.obs, ctx.counts, false, nil
}

// arrive 到达阶段，入口道路已满时丢弃车辆
func (ctx *Context) arrive(lanes []*lane.Lane) {
	for {
		road, car, ok := ctx.arrival.Next()
		if !ok {
			return
		}
		ctx.stats.Arrived++
		if !lanes[road].Add(car) {
			ctx.stats.DroppedAtEntry++
		}
	}
}

// transfer 转移阶段
// 功能：对每条道路，反复移出位置超过道路长度的第一辆车
// 说明：
//   - 终点为合法路口时计数加1，边界道路不计数
//   - 有下游道路则加入其队尾（已满则丢弃），否则车辆离开路网
//   - 新加入下游的车辆位置不大于0，本步内不会被再次转移
func (ctx *Context) transfer(lanes []*lane.Lane) {
	for e, l := range lanes {
		road := int32(e)
		length := ctx.network.Length(road)
		for {
			x, ok := l.FrontX()
			if !ok || x <= length {
				break
			}
			car := l.PopFront()
			if dest := ctx.network.Dest(road); dest >= 0 {
				ctx.counts[dest]++
				ctx.stats.Crossed++
			}
			next := ctx.network.Next(road)
			if next < 0 {
				ctx.stats.Exited++
				continue
			}
			if !lanes[next].Add(car) {
				ctx.stats.DroppedInTransfer++
			}
		}
	}
}

// heartbeat 心跳日志，间隔为0时关闭
func (ctx *Context) heartbeat() {
	interval := ctx.runtimeConfig.C.Heartbeat
	if interval <= 0 || ctx.clock.Elapsed()%interval != 0 {
		return
	}
	hour, minute, second := ctx.clock.GetHourMinuteSecond()
	log.Infof(
		"STEP: %d(%d:%d:%.2f) cars: %d, crossed: %d, dropped: %d",
		ctx.clock.InternalStep,
		hour, minute, second,
		ctx.CarsOnRoads(),
		ctx.stats.Crossed,
		ctx.stats.DroppedAtEntry+ctx.stats.DroppedInTransfer,
	)
}
