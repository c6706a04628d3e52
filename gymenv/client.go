package gymenv

import (
	"context"

	"connectrpc.com/connect"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/task"
)

// Client 环境RPC客户端
type Client struct {
	reset    *connect.Client[ResetRequest, ResetResponse]
	step     *connect.Client[StepRequest, StepResponse]
	spaces   *connect.Client[SpacesRequest, SpacesResponse]
	snapshot *connect.Client[SnapshotRequest, SnapshotResponse]
}

// NewClient 创建环境RPC客户端
// 参数：httpClient-HTTP客户端，baseURL-服务地址（如http://localhost:51102）
func NewClient(httpClient connect.HTTPClient, baseURL string) *Client {
	opt := connect.WithCodec(jsonCodec{})
	return &Client{
		reset:    connect.NewClient[ResetRequest, ResetResponse](httpClient, baseURL+EnvServiceResetProcedure, opt),
		step:     connect.NewClient[StepRequest, StepResponse](httpClient, baseURL+EnvServiceStepProcedure, opt),
		spaces:   connect.NewClient[SpacesRequest, SpacesResponse](httpClient, baseURL+EnvServiceSpacesProcedure, opt),
		snapshot: connect.NewClient[SnapshotRequest, SnapshotResponse](httpClient, baseURL+EnvServiceSnapshotProcedure, opt),
	}
}

func (c *Client) Reset(ctx context.Context) ([]int32, error) {
	res, err := c.reset.CallUnary(ctx, connect.NewRequest(&ResetRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Obs, nil
}

func (c *Client) Step(ctx context.Context, action []int8) (*StepResponse, error) {
	res, err := c.step.CallUnary(ctx, connect.NewRequest(&StepRequest{Action: action}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func (c *Client) Spaces(ctx context.Context) (*SpacesResponse, error) {
	res, err := c.spaces.CallUnary(ctx, connect.NewRequest(&SpacesRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// Snapshot 获取状态快照，roadIDs为空时返回所有道路
func (c *Client) Snapshot(ctx context.Context, roadIDs ...int32) (*task.Snapshot, error) {
	res, err := c.snapshot.CallUnary(ctx, connect.NewRequest(&SnapshotRequest{RoadIDs: roadIDs}))
	if err != nil {
		return nil, err
	}
	return &res.Msg.Snapshot, nil
}
