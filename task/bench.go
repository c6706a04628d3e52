package task

import (
	"errors"
	"fmt"
	"time"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrBenchConfig = errors.New("invalid bench setting")
)

// EpisodeResult 单个episode的运行结果
type EpisodeResult struct {
	Episode int           // episode编号
	Seed    uint64        // 到达过程的随机种子
	Steps   int32         // 执行的步数
	Reward  int64         // 所有步所有路口counts之和
	Stats   Stats         // 累计统计
	Cars    int64         // 结束时仍在路网中的车辆数
	Elapsed time.Duration // 耗时
}

// RunEpisodes 并行运行多个互相独立的episode
// 功能：每个episode拥有独立的仿真实例、随机种子与相位策略，共享同一只读路网
// 参数：network-路网，rc-运行时配置（step.total必须为正），episodes-episode数，newPolicy-相位策略工厂，参数为该episode的随机种子
// 返回：按episode编号排列的结果，错误信息
// 算法说明：
// 1. 第i个episode的随机种子为seed+i<<32，与单实例内的重置种子错开
// 2. 每步以上一步的观测调用策略得到相位，直到达到step.total
func RunEpisodes(
	network entity.IRoadNetwork,
	rc *config.RuntimeConfig,
	episodes int,
	newPolicy func(seed uint64) junction.IPhasePolicy,
) ([]EpisodeResult, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("%w: episodes %d must be positive", ErrBenchConfig, episodes)
	}
	if rc.C.Step.Total <= 0 {
		return nil, fmt.Errorf("%w: step total %d must be positive", ErrBenchConfig, rc.C.Step.Total)
	}
	results := parallel.GoMap(lo.Range(episodes), func(i int) EpisodeResult {
		local := *rc
		local.C.Seed = rc.C.Seed + uint64(i)<<32
		return runEpisode(network, &local, i, newPolicy(local.C.Seed))
	})
	total := lo.SumBy(results, func(r EpisodeResult) int64 { return r.Reward })
	log.Infof("bench: %d episodes x %d steps, total reward %d", episodes, rc.C.Step.Total, total)
	return results, nil
}

func runEpisode(network entity.IRoadNetwork, rc *config.RuntimeConfig, episode int, policy junction.IPhasePolicy) EpisodeResult {
	start := time.Now()
	ctx := New(network, rc)
	policy.Reset()
	res := EpisodeResult{Episode: episode, Seed: rc.C.Seed}
	obs := ctx.Observation()
	for !ctx.Truncated() {
		var counts []int32
		var err error
		obs, counts, _, err = ctx.Step(policy.Decide(obs))
		if err != nil {
			log.Panicf("episode %d: policy produced an invalid phase: %v", episode, err)
		}
		res.Reward += lo.SumBy(counts, func(c int32) int64 { return int64(c) })
		res.Steps++
	}
	res.Stats = ctx.Stats()
	res.Cars = ctx.CarsOnRoads()
	res.Elapsed = time.Since(start)
	log.Debugf("episode %d: reward %d, %d cars left, %v", episode, res.Reward, res.Cars, res.Elapsed)
	return res
}

// Summarize 各episode奖励的均值与样本标准差（少于2个episode时标准差为0）
func Summarize(results []EpisodeResult) (mean, std float64) {
	rewards := lo.Map(results, func(r EpisodeResult, _ int) float64 { return float64(r.Reward) })
	if len(rewards) < 2 {
		return stat.Mean(rewards, nil), 0
	}
	return stat.MeanStdDev(rewards, nil)
}
