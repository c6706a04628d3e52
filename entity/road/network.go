package road

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/graph/topo"
)

const (
	NoRoad         = -1 // 没有后继道路
	NoIntersection = -1 // 没有终点路口
)

// 道路方向，同一方向的道路编号连续
const (
	East  = 0 // 向东（列号增大）
	West  = 1 // 向西
	North = 2 // 向北（行号增大）
	South = 3 // 向南
)

// 入口屏蔽位，置位表示关闭该侧入口
const (
	MaskWest  uint8 = 1 << 0 // 西侧边缘，第0列的向东道路
	MaskEast  uint8 = 1 << 1 // 东侧边缘，第n-1列的向西道路
	MaskSouth uint8 = 1 << 2 // 南侧边缘，第0行的向北道路
	MaskNorth uint8 = 1 << 3 // 北侧边缘，第m-1行的向南道路
)

var (
	ErrInvalidGrid    = errors.New("invalid grid network")
	ErrNoEntrypoint   = errors.New("entry side mask disables every entrypoint")
	ErrCyclicNetwork  = errors.New("road network contains a cycle")
	ErrRoadOutOfRange = errors.New("road id out of range")
)

// Network 网格路网
// 功能：描述m×n网格上的道路、路口、连接关系和入口，构造后只读
// 说明：
// 道路编号（v=m*n）：
//   - [d*v, (d+1)*v)：方向d的网格内道路，i%v对应终点路口，列号i%n，行号(i%v)/n
//   - [4v, 4v+n)：南侧出口（按列），[4v+n, 4v+n+m)：东侧出口（按行）
//   - [4v+n+m, 4v+2n+m)：北侧出口（按列），[4v+2n+m, 4v+2n+2m)：西侧出口（按行）
//
// 边界出口道路没有后继，也没有终点路口
type Network struct {
	m, n          int32
	intersections int32
	trainRoads    int32
	roads         int32
	length        float64

	phases      []int8  // 道路所属相位，东西向为1，南北向与边界道路为0
	dest        []int32 // 终点路口
	next        []int32 // 后继道路表
	entrypoints []int32 // 入口道路
}

// New 创建网格路网
// 功能：校验参数，预计算后继表、相位表、终点表与入口集合，并检查后继链无环
// 参数：m-行数，n-列数，length-道路长度，entryMask-入口屏蔽位
// 返回：路网指针，错误信息
func New(m, n int32, length float64, entryMask uint8) (*Network, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, m, n)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: road length %v", ErrInvalidGrid, length)
	}
	if int64(m)*int64(n)*4+2*int64(m)+2*int64(n) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d has too many roads", ErrInvalidGrid, m, n)
	}
	v := m * n
	net := &Network{
		m:             m,
		n:             n,
		intersections: v,
		trainRoads:    4 * v,
		roads:         4*v + 2*n + 2*m,
		length:        length,
	}
	net.phases = make([]int8, net.roads)
	net.dest = make([]int32, net.roads)
	net.next = make([]int32, net.roads)
	for i := range net.roads {
		if i < net.trainRoads {
			net.dest[i] = i % v
			if i/v < 2 {
				net.phases[i] = 1
			}
		} else {
			net.dest[i] = NoIntersection
		}
		net.next[i] = net.successor(i)
	}
	net.entrypoints = net.sideEntrypoints(entryMask)
	if len(net.entrypoints) == 0 {
		return nil, fmt.Errorf("%w: mask %04b", ErrNoEntrypoint, entryMask)
	}
	if _, err := topo.Sort(net.Graph()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCyclicNetwork, err)
	}
	log.Debugf("grid %dx%d: %d roads, %d entrypoints", m, n, net.roads, len(net.entrypoints))
	return net, nil
}

// successor 按网格邻接关系计算后继道路，越过网格边缘时进入对应的边界出口道路
func (net *Network) successor(i int32) int32 {
	v, n, m := net.intersections, net.n, net.m
	if i >= net.trainRoads {
		return NoRoad
	}
	col := i % n
	row := (i % v) / n
	switch i / v {
	case East:
		if col < n-1 {
			return i + 1
		}
		return 4*v + n + row
	case West:
		if col > 0 {
			return i - 1
		}
		return 4*v + 2*n + m + row
	case North:
		if row < m-1 {
			return i + n
		}
		return 4*v + n + m + col
	default:
		if row > 0 {
			return i - n
		}
		return 4*v + col
	}
}

// sideEntrypoints 根据屏蔽位选出网格边缘上的入口道路
func (net *Network) sideEntrypoints(mask uint8) []int32 {
	v, n, m := net.intersections, net.n, net.m
	res := make([]int32, 0, 2*(n+m))
	if mask&MaskWest == 0 {
		res = append(res, lo.Map(lo.Range(int(m)), func(row int, _ int) int32 { return East*v + int32(row)*n })...)
	}
	if mask&MaskEast == 0 {
		res = append(res, lo.Map(lo.Range(int(m)), func(row int, _ int) int32 { return West*v + int32(row)*n + n - 1 })...)
	}
	if mask&MaskSouth == 0 {
		res = append(res, lo.Map(lo.Range(int(n)), func(col int, _ int) int32 { return North*v + int32(col) })...)
	}
	if mask&MaskNorth == 0 {
		res = append(res, lo.Map(lo.Range(int(n)), func(col int, _ int) int32 { return South*v + n*(m-1) + int32(col) })...)
	}
	return res
}

// M 行数
func (net *Network) M() int32 {
	return net.m
}

// N 列数
func (net *Network) N() int32 {
	return net.n
}

func (net *Network) Intersections() int32 {
	return net.intersections
}

func (net *Network) TrainRoads() int32 {
	return net.trainRoads
}

func (net *Network) Roads() int32 {
	return net.roads
}

// Length 道路长度，网格内所有道路等长
func (net *Network) Length(road int32) float64 {
	return net.length
}

// Next 后继道路，边界出口道路返回NoRoad
func (net *Network) Next(road int32) int32 {
	return net.next[road]
}

// Dest 终点路口，边界道路返回NoIntersection
func (net *Network) Dest(road int32) int32 {
	return net.dest[road]
}

// PhaseOf 道路所属相位
func (net *Network) PhaseOf(road int32) int8 {
	return net.phases[road]
}

// Entrypoints 入口道路（只读，调用方不得修改）
func (net *Network) Entrypoints() []int32 {
	return net.entrypoints
}

func (net *Network) IsTrainRoad(road int32) bool {
	return road >= 0 && road < net.trainRoads
}

// Direction 网格内道路的方向，边界道路返回-1
func (net *Network) Direction(road int32) int32 {
	if !net.IsTrainRoad(road) {
		return -1
	}
	return road / net.intersections
}

// CheckRoad 检查道路编号是否合法
func (net *Network) CheckRoad(road int32) error {
	if road < 0 || road >= net.roads {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrRoadOutOfRange, road, net.roads)
	}
	return nil
}

// Sinks 没有后继的道路
func (net *Network) Sinks() []int32 {
	return lo.Filter(lo.RangeFrom(int32(0), int(net.roads)), func(r int32, _ int) bool {
		return net.next[r] == NoRoad
	})
}
