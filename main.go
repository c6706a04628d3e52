package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/entity/road"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/gymenv"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/task"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/config"
	"github.com/tsinghua-fib-lab/gridtraffic-sim/utils/input"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 运行模式：bench-并行运行多个episode并统计奖励，serve-提供环境RPC服务
	mode = flag.String("mode", "serve", "run mode (bench or serve)")
	// bench模式的episode数
	episodes = flag.Int("episodes", 8, "number of episodes in bench mode")
	// bench模式的相位策略
	policyName = flag.String("policy", "fixed", "phase policy in bench mode (fixed, mp, const, random)")
	// 固定周期与最大压力策略的相位持续步数
	lightTicks = flag.Int("light_ticks", 100, "ticks per light phase for fixed and mp policies")
	// 本程序监听的地址，为空则使用配置文件中的server.listen
	listen = flag.String("listen", "", "listening address, overrides server.listen")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "gridtraffic")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	rc, err := input.Load(*configPath, *configData)
	if err != nil {
		log.Panicf("config err: %v", err)
	}
	log.Infof("%+v", rc.All)

	g := rc.All.Grid
	network, err := road.New(g.M, g.N, g.RoadLength, g.EntrySideMask)
	if err != nil {
		log.Panicf("road network err: %v", err)
	}

	switch *mode {
	case "bench":
		bench(network, rc)
	case "serve":
		serve(network, rc)
	default:
		log.Panicf("unknown mode %q", *mode)
	}
}

func bench(network *road.Network, rc *config.RuntimeConfig) {
	newPolicy := func(seed uint64) junction.IPhasePolicy {
		switch *policyName {
		case "fixed":
			return trafficlight.NewFixedCycle(network.Intersections(), int32(*lightTicks), false)
		case "mp":
			return trafficlight.NewMaxPressure(network, int32(*lightTicks), 6)
		case "const":
			return trafficlight.NewConstant(network.Intersections(), 0)
		case "random":
			return trafficlight.NewRandom(network.Intersections(), seed)
		}
		log.Panicf("unknown policy %q", *policyName)
		return nil
	}
	newPolicy(rc.C.Seed) // 提前检查策略名
	start := time.Now()
	results, err := task.RunEpisodes(network, rc, *episodes, newPolicy)
	if err != nil {
		log.Panicf("bench err: %v", err)
	}
	for _, r := range results {
		log.Infof("episode %d: reward %d, dropped %d, left %d, %v",
			r.Episode, r.Reward, r.Stats.DroppedAtEntry+r.Stats.DroppedInTransfer, r.Cars, r.Elapsed)
	}
	mean, std := task.Summarize(results)
	log.Infof("policy %s: reward mean %.2f std %.2f over %d episodes in %v",
		*policyName, mean, std, len(results), time.Since(start))
}

func serve(network *road.Network, rc *config.RuntimeConfig) {
	addr := rc.All.Server.Listen
	if *listen != "" {
		addr = *listen
	}
	env := gymenv.New(task.New(network, rc))
	interval := time.Duration(rc.All.Server.StreamInterval * float64(time.Second))
	server := gymenv.NewServer(env, interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Serve(ctx, addr); err != nil {
		log.Panicf("failed to serve: %v", err)
	}
	log.Infof("env service stopped")
}
