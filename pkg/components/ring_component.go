package components

// RingComponent 冲击波环
//
// 五个环在爆炸时一次性创建，通过 Delay 错开 100ms 依次出现。
// 每帧扩大 Scale、降低 Alpha，Alpha <= 0 时自行销毁。
type RingComponent struct {
	// Session 所属爆炸会话
	Session uint64

	// Index 环的序号（0 开始）
	Index int

	// Delay 出现前的剩余等待时间（秒）
	Delay float64

	// Started 是否已经出现
	Started bool

	// Scale 当前缩放
	Scale float64

	// Alpha 当前不透明度
	Alpha float64
}
