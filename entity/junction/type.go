package junction

// 依赖倒置，表达仿真循环对相位策略的接口需求

// 相位策略接口，根据观测给出下一步每个路口的相位
type IPhasePolicy interface {
	// 新episode开始时清空内部状态
	Reset()
	// 根据各网格内道路的车辆数给出相位，返回值在下一次调用前有效
	Decide(obs []int32) []int8
}
