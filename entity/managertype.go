package entity

// 依赖倒置

// entity/road/network.go的依赖倒置
// 路网只读，可以被多个仿真实例并发共享
type IRoadNetwork interface {
	Intersections() int32 // 路口数 m*n
	TrainRoads() int32    // 网格内道路数 4*m*n
	Roads() int32         // 道路总数（含边界出口道路）

	Next(road int32) int32       // 后继道路，没有则返回-1
	Dest(road int32) int32       // 终点路口，边界道路返回-1
	Length(road int32) float64   // 道路长度
	PhaseOf(road int32) int8     // 道路所属相位（0/1）
	Entrypoints() []int32        // 车辆入口道路
	IsTrainRoad(road int32) bool // 是否为网格内道路
}
