package gymenv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/task"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

const (
	defaultStreamInterval = 100 * time.Millisecond
	shutdownTimeout       = 5 * time.Second
)

// Server 环境RPC服务
// 功能：通过connect协议（JSON编码）对外提供Reset/Step/Spaces/Snapshot，并在/ws上推送状态快照
// 说明：所有访问经互斥锁串行化，推送只读取快照，不修改环境状态
type Server struct {
	mu      sync.Mutex
	env     *Env
	version uint64 // 每次Reset或Step后加1，推送时据此跳过未变化的状态

	streamInterval time.Duration
	closing        chan struct{}
	closeOnce      sync.Once
}

// NewServer 创建环境RPC服务
// 参数：env-环境，streamInterval-快照推送的最小间隔（非正数时使用100ms）
// 返回：服务指针
func NewServer(env *Env, streamInterval time.Duration) *Server {
	if streamInterval <= 0 {
		streamInterval = defaultStreamInterval
	}
	return &Server{
		env:            env,
		version:        1,
		streamInterval: streamInterval,
		closing:        make(chan struct{}),
	}
}

// Handler 构建HTTP路由（允许跨域，便于浏览器中的渲染页面直接访问）
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	opt := connect.WithCodec(jsonCodec{})
	mux.Handle(EnvServiceResetProcedure, connect.NewUnaryHandler(EnvServiceResetProcedure, s.Reset, opt))
	mux.Handle(EnvServiceStepProcedure, connect.NewUnaryHandler(EnvServiceStepProcedure, s.Step, opt))
	mux.Handle(EnvServiceSpacesProcedure, connect.NewUnaryHandler(EnvServiceSpacesProcedure, s.Spaces, opt))
	mux.Handle(EnvServiceSnapshotProcedure, connect.NewUnaryHandler(EnvServiceSnapshotProcedure, s.Snapshot, opt))
	mux.HandleFunc("/ws", s.handleStream)
	return cors.AllowAll().Handler(mux)
}

// Serve 在addr上提供服务直到ctx结束
// 功能：同时支持HTTP/1.1与明文HTTP/2（gRPC客户端需要后者），ctx结束后优雅关闭
// 返回：监听失败或关闭失败时的错误
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("env service listening at %v", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close 通知所有推送连接退出
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) Reset(
	ctx context.Context, req *connect.Request[ResetRequest],
) (*connect.Response[ResetResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs := s.env.Reset()
	s.version++
	return connect.NewResponse(&ResetResponse{Obs: append([]int32(nil), obs...)}), nil
}

// Step 执行一步，动作非法时返回InvalidArgument且不改变状态
func (s *Server) Step(
	ctx context.Context, req *connect.Request[StepRequest],
) (*connect.Response[StepResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs, reward, done, _, err := s.env.Step(req.Msg.Action)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	s.version++
	sim := s.env.Context()
	return connect.NewResponse(&StepResponse{
		Obs:       append([]int32(nil), obs...),
		Reward:    append([]int32(nil), reward...),
		Done:      done,
		Truncated: sim.Truncated(),
		Step:      sim.Clock().InternalStep,
		Stats:     sim.Stats(),
	}), nil
}

func (s *Server) Spaces(
	ctx context.Context, req *connect.Request[SpacesRequest],
) (*connect.Response[SpacesResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return connect.NewResponse(&SpacesResponse{
		Action:      s.env.ActionSpace(),
		Observation: s.env.ObservationSpace(),
	}), nil
}

// Snapshot 状态快照，可只取部分道路
func (s *Server) Snapshot(
	ctx context.Context, req *connect.Request[SnapshotRequest],
) (*connect.Response[SnapshotResponse], error) {
	snap, _ := s.snapshot()
	roads, failed := utils.Find(snap.Roads, req.Msg.RoadIDs)
	if len(failed) > 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown road ids %v", failed))
	}
	snap.Roads = roads
	return connect.NewResponse(&SnapshotResponse{Snapshot: snap}), nil
}

// snapshot 在锁内复制当前状态，同时返回状态版本
func (s *Server) snapshot() (task.Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.Context().Snapshot(), s.version
}
