package gymenv

// HistoryEnv 历史观测包装
// 功能：观测为最近k次观测按时间顺序的堆叠，最旧的在前
// 说明：重置时先重置内部环境，再以全0动作执行k-1步填满历史，这些步的奖励被丢弃
type HistoryEnv struct {
	env     *Env
	k       int
	history [][]int32
}

// NewHistoryEnv 创建历史观测包装，k不小于1
func NewHistoryEnv(env *Env, k int) *HistoryEnv {
	if k < 1 {
		log.Panicf("history length %d < 1", k)
	}
	return &HistoryEnv{env: env, k: k, history: make([][]int32, 0, k)}
}

func (h *HistoryEnv) Env() *Env {
	return h.env
}

// Reset 重置并填满历史
// 返回：k×train_roads的观测（调用方持有，不会被覆盖）
func (h *HistoryEnv) Reset() ([][]int32, error) {
	h.history = h.history[:0]
	h.push(h.env.Reset())
	zero := h.env.ZeroAction()
	for len(h.history) < h.k {
		obs, _, _, _, err := h.env.Step(zero)
		if err != nil {
			return nil, err
		}
		h.push(obs)
	}
	return h.stack(), nil
}

// Step 执行一步，丢弃最旧的观测
func (h *HistoryEnv) Step(action []int8) (obs [][]int32, reward []int32, done bool, info map[string]any, err error) {
	latest, reward, done, info, err := h.env.Step(action)
	if err != nil {
		return nil, nil, false, nil, err
	}
	if len(h.history) == h.k {
		h.history = append(h.history[:0], h.history[1:]...)
	}
	h.push(latest)
	return h.stack(), reward, done, info, nil
}

func (h *HistoryEnv) ObservationSpace() Box {
	box := h.env.ObservationSpace()
	box.Shape = append([]int32{int32(h.k)}, box.Shape...)
	return box
}

func (h *HistoryEnv) push(obs []int32) {
	h.history = append(h.history, append([]int32(nil), obs...))
}

func (h *HistoryEnv) stack() [][]int32 {
	res := make([][]int32, len(h.history))
	for i, o := range h.history {
		res[i] = append([]int32(nil), o...)
	}
	return res
}
