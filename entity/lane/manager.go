package lane

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
)

// LaneManager Lane管理器
// 功能：为路网中的每条道路持有一个环形缓冲区，下标即道路编号
// 说明：每个仿真实例独占一个LaneManager，不做任何加锁
type LaneManager struct {
	lanes []*Lane
}

// NewManager 创建Lane管理器实例
// 功能：按路网道路数创建所有环形缓冲区
// 参数：network-路网，capacity-每条道路的槽位数
// 返回：新创建的Lane管理器实例
func NewManager(network entity.IRoadNetwork, capacity int32) *LaneManager {
	return &LaneManager{
		lanes: lo.Map(lo.Range(int(network.Roads())), func(i int, _ int) *Lane {
			return New(int32(i), capacity)
		}),
	}
}

// Get 根据ID获取Lane实例，如果不存在则panic
func (m *LaneManager) Get(id int32) *Lane {
	if id < 0 || int(id) >= len(m.lanes) {
		log.Panicf("no id %d in lane data", id)
	}
	return m.lanes[id]
}

// GetOrError 根据ID获取Lane实例，如果不存在则返回错误
func (m *LaneManager) GetOrError(id int32) (*Lane, error) {
	if id < 0 || int(id) >= len(m.lanes) {
		return nil, fmt.Errorf("no id %d in lane data", id)
	}
	return m.lanes[id], nil
}

// Lanes 所有Lane，下标即道路编号
func (m *LaneManager) Lanes() []*Lane {
	return m.lanes
}

// Reset 清空所有道路
func (m *LaneManager) Reset() {
	for _, l := range m.lanes {
		l.Reset()
	}
}

// Update 更新阶段，对所有非空道路执行跟车更新
// 参数：dt-时间步长
func (m *LaneManager) Update(dt float64) {
	for _, l := range m.lanes {
		if l.leading == l.lastcar {
			continue
		}
		l.Update(dt)
	}
}

// Occupancy 将前len(dst)条道路的车辆数写入dst
func (m *LaneManager) Occupancy(dst []int32) {
	for i := range dst {
		dst[i] = m.lanes[i].Len()
	}
}

// Total 所有道路上的车辆总数
func (m *LaneManager) Total() int64 {
	return lo.SumBy(m.lanes, func(l *Lane) int64 { return int64(l.Len()) })
}
