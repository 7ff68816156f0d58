package components

import (
	"image/color"

	"github.com/decker502/rocket/pkg/ecs"
)

// ParticleComponent 单个爆炸粒子
//
// 位置存放在同一实体的 PositionComponent 中。
// 所有速度、加速度、衰减值都以参考帧为单位，由 ParticleSystem 按 dt 缩放。
type ParticleComponent struct {
	// Velocity (速度, 像素/参考帧)
	VelocityX float64
	VelocityY float64

	// Gravity 竖直加速度（像素/参考帧²）
	Gravity float64

	// Life 剩余生命 1.0 -> 0.0，只减不增
	Life float64

	// LifeDecay 每参考帧的生命衰减
	LifeDecay float64

	// Color 生成时从调色板抽取，之后不再变化
	Color color.RGBA

	// Scale / Alpha 渲染属性，每帧等于 Life
	Scale float64
	Alpha float64

	// Burst 所属粒子批次实体
	Burst ecs.EntityID
}
