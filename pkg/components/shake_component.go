package components

// ShakeComponent 镜头抖动
//
// 挂在场景实体上。OriginX/OriginY 是抖动开始前的场景偏移，
// 抖动结束或被取消时场景偏移精确恢复为该值。
type ShakeComponent struct {
	// Session 所属爆炸会话
	Session uint64

	// Intensity 初始振幅（像素）
	Intensity float64

	// Duration 持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// OriginX / OriginY 抖动前的场景偏移
	OriginX float64
	OriginY float64
}
