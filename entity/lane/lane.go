package lane

import (
	"fmt"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/vehicle"
)

// Lane 单条道路上的固定容量环形车辆缓冲区
// 功能：按到达顺序存放道路上的车辆，支持尾部插入、头部移出和整体跟车更新
// 说明：
//   - 槽位1..capacity-1循环使用，leading与lastcar始终在该范围内
//   - leading槽位为哨兵，位置由信号控制写入，不是真实车辆，其余字段恒为0
//   - (leading, lastcar]（循环意义下）为真实车辆，靠近leading的车先到
//   - 槽位0仅在回绕的跟车更新中作为临时空间，不保存有效状态
//   - leading==lastcar为空，advance(lastcar)==leading为满，最多capacity-2辆车
type Lane struct {
	id       int32
	capacity int32

	leading int32 // 哨兵槽位
	lastcar int32 // 最后一辆车的槽位

	cars vehicle.Columns
}

// New 创建环形缓冲区
// 参数：id-道路编号，capacity-槽位数（至少为3）
// 返回：已重置的空缓冲区
func New(id, capacity int32) *Lane {
	if capacity < 3 {
		log.Panicf("lane %d: capacity %d < 3", id, capacity)
	}
	l := &Lane{
		id:       id,
		capacity: capacity,
		cars:     vehicle.NewColumns(int(capacity)),
	}
	l.Reset()
	return l
}

// Reset 清空道路
// 功能：leading=lastcar=1，哨兵清零且位置为+∞（前方无约束）
func (l *Lane) Reset() {
	l.leading = 1
	l.lastcar = 1
	l.cars.Clear(1)
	l.cars.X[1] = mathutil.INF
}

// advance 槽位循环后移一位，越过末尾时回到1（跳过槽位0）
func (l *Lane) advance(i int32) int32 {
	i++
	if i >= l.capacity {
		return 1
	}
	return i
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %d", l.id)
}

// ID 道路编号
func (l *Lane) ID() int32 {
	return l.id
}

// Capacity 槽位数
func (l *Lane) Capacity() int32 {
	return l.capacity
}

// Cursors 返回leading与lastcar
func (l *Lane) Cursors() (leading, lastcar int32) {
	return l.leading, l.lastcar
}

// Empty 道路上是否没有车辆
func (l *Lane) Empty() bool {
	return l.leading == l.lastcar
}

// Full 道路是否已满
func (l *Lane) Full() bool {
	return l.advance(l.lastcar) == l.leading
}

// Len 道路上的车辆数
// 说明：回绕时lastcar在物理上位于leading之前，需要补上capacity-1个可用槽位
func (l *Lane) Len() int32 {
	if l.leading > l.lastcar {
		return l.lastcar + l.capacity - 1 - l.leading
	}
	return l.lastcar - l.leading
}

// Sentinel 哨兵位置
func (l *Lane) Sentinel() float64 {
	return l.cars.X[l.leading]
}

// SetSentinel 写入哨兵位置
func (l *Lane) SetSentinel(x float64) {
	l.cars.X[l.leading] = x
}

// TailX 最后一辆车的位置，调用方需保证道路非空
func (l *Lane) TailX() float64 {
	return l.cars.X[l.lastcar]
}

// FrontX 第一辆车（紧随哨兵）的位置
// 返回：位置，道路为空时ok=false
func (l *Lane) FrontX() (x float64, ok bool) {
	if l.Empty() {
		return 0, false
	}
	return l.cars.X[l.advance(l.leading)], true
}

// Add 在队尾加入一辆车
// 功能：新车放在lastcar之后的槽位，位置为min(0, 上一辆车位置-车长-最小车距)
// 参数：car-车辆（位置字段会被覆盖）
// 返回：是否成功加入，道路已满时丢弃车辆并返回false
func (l *Lane) Add(car vehicle.Car) bool {
	pos := l.advance(l.lastcar)
	if pos == l.leading {
		return false
	}
	start := 0.0
	if !l.Empty() {
		start = l.cars.X[l.lastcar] - l.cars.Length[l.lastcar] - l.cars.MinGap[l.lastcar]
	}
	car.X = min(0, start)
	l.cars.Set(pos, car)
	l.lastcar = pos
	return true
}

// PopFront 移出第一辆车
// 功能：原哨兵复制到第一辆车的槽位，该槽位成为新的哨兵，leading后移一位
// 返回：移出的车辆，调用方需保证道路非空
func (l *Lane) PopFront() vehicle.Car {
	front := l.advance(l.leading)
	car := l.cars.Get(front)
	l.cars.Copy(front, l.leading)
	l.leading = front
	return car
}

// Update 对道路上所有车辆执行一步跟车更新
// 功能：每辆车以前一个槽位（第一辆车以哨兵）为前车
// 参数：dt-时间步长
// 算法说明：
// 1. 未回绕（leading<lastcar）：一次连续更新leading..lastcar
// 2. 回绕：先把最后一个物理槽位复制到槽位0，
// 再更新leading..capacity-1，最后以槽位0为槽位1的前车更新0..lastcar
func (l *Lane) Update(dt float64) {
	if l.Empty() {
		return
	}
	if l.leading < l.lastcar {
		l.cars.FollowSegment(dt, l.leading, l.lastcar)
		return
	}
	last := l.capacity - 1
	l.cars.Copy(0, last)
	l.cars.FollowSegment(dt, l.leading, last)
	l.cars.FollowSegment(dt, 0, l.lastcar)
}

// Each 按从前到后的顺序遍历道路上的车辆
func (l *Lane) Each(fn func(car vehicle.Car)) {
	for i := l.leading; i != l.lastcar; {
		i = l.advance(i)
		fn(l.cars.Get(i))
	}
}
