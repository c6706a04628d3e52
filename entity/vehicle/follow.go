package vehicle

import "math"

const (
	eps = 1e-8 // 防止车距为0时除零
)

// follow 跟车模型核心实现
// 功能：用智能驾驶模型(IDM)以前车ld为参照，推进本车me一个时间步
// 参数：dt-时间步长，ld-前车槽位，me-本车槽位
// 算法说明：
// 1. 期望车距：s_star = s0 + max(0, v*T + v*(v-v_ld)/(2*sqrt(a*b)))
// 2. 实际车距：s = x_ld - x_me - len_ld
// 3. 加速度：dv = a * (1 - (v/v0)^delta - (s_star/(s+eps))^2)
// 4. 位移：dx = dt*v + 0.5*dv*dt^2，只前进不后退
// 5. 速度：max(0, v + dv*dt)
func (c *Columns) follow(dt float64, ld, me int32) {
	v := c.V[me]
	// https://en.wikipedia.org/wiki/Intelligent_driver_model
	sStar := c.MinGap[me] + math.Max(
		0,
		v*c.Headway[me]+v*(v-c.V[ld])/(2*math.Sqrt(c.MaxA[me]*c.ComfortB[me])),
	)
	s := c.X[ld] - c.X[me] - c.Length[ld]
	ratio := sStar / (s + eps)
	dv := c.MaxA[me] * (1 - math.Pow(v/c.V0[me], c.Delta[me]) - ratio*ratio)
	dx := dt*v + 0.5*dv*dt*dt
	if dx > 0 {
		c.X[me] += dx
	}
	c.V[me] = math.Max(0, v+dv*dt)
}

// FollowSegment 对连续槽位区间执行一步跟车更新
// 功能：槽位lo+1..hi的每辆车都以前一个槽位为前车更新
// 参数：dt-时间步长，lo-第一个前车槽位，hi-最后一个本车槽位
// 说明：从队尾向队首遍历，每辆车读到的都是前车本步更新前的状态（同步更新）
func (c *Columns) FollowSegment(dt float64, lo, hi int32) {
	for me := hi; me > lo; me-- {
		c.follow(dt, me-1, me)
	}
}
