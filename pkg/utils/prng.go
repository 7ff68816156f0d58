package utils

import (
	"math/rand"
	"time"
)

// PRNG 可注入的随机数源
//
// 粒子速度、粒子颜色、镜头抖动和星空位置都从这里取随机数，
// 测试中使用固定种子即可断言精确的粒子轨迹。
type PRNG struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNG 创建随机数源
// 如果 seed 为 0，使用当前时间作为种子
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed 返回实际使用的种子（便于日志复现）
func (p *PRNG) Seed() int64 {
	return p.seed
}

// Intn 返回 [0, n) 范围内的随机整数
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Float64 返回 [0.0, 1.0) 范围内的随机数
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Range 返回 [min, max) 范围内的均匀随机数
func (p *PRNG) Range(min, max float64) float64 {
	return min + p.rng.Float64()*(max-min)
}

// Symmetric 返回 [-r, r) 范围内的均匀随机数
func (p *PRNG) Symmetric(r float64) float64 {
	return p.Range(-r, r)
}
