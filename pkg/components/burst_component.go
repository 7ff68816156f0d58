package components

import "github.com/decker502/rocket/pkg/ecs"

// BurstComponent 一次爆炸生成的粒子批次（粒子物理单元）
//
// 批次实体持有其粒子 ID 列表。粒子全部消亡后批次实体自行销毁，
// 不再请求后续 tick。
type BurstComponent struct {
	// Session 所属爆炸会话，过期后整批粒子被拆除
	Session uint64

	// Particles 存活粒子的实体 ID
	Particles []ecs.EntityID

	// Spawned 生成的粒子总数
	Spawned int

	// TicksRun 已经推进的 tick 数
	TicksRun int

	// Done 批次已终止（粒子耗尽或会话过期）
	Done bool
}
