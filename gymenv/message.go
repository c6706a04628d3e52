package gymenv

import "github.com/tsinghua-fib-lab/gridtraffic-sim/task"

const (
	// EnvServiceName 环境服务的完整名称
	EnvServiceName = "traffic.v1.EnvService"

	EnvServiceResetProcedure    = "/" + EnvServiceName + "/Reset"
	EnvServiceStepProcedure     = "/" + EnvServiceName + "/Step"
	EnvServiceSpacesProcedure   = "/" + EnvServiceName + "/Spaces"
	EnvServiceSnapshotProcedure = "/" + EnvServiceName + "/Snapshot"
)

type ResetRequest struct{}

type ResetResponse struct {
	Obs []int32 `json:"obs"`
}

type StepRequest struct {
	Action []int8 `json:"action"`
}

type StepResponse struct {
	Obs       []int32    `json:"obs"`
	Reward    []int32    `json:"reward"`
	Done      bool       `json:"done"`
	Truncated bool       `json:"truncated"`
	Step      int32      `json:"step"`
	Stats     task.Stats `json:"stats"`
}

type SpacesRequest struct{}

type SpacesResponse struct {
	Action      MultiBinary `json:"action"`
	Observation Box         `json:"observation"`
}

type SnapshotRequest struct {
	RoadIDs []int32 `json:"road_ids"` // 为空时返回所有道路
}

type SnapshotResponse struct {
	Snapshot task.Snapshot `json:"snapshot"`
}
