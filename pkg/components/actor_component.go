package components

// ActorComponent 火箭的姿态
//
// 位置存放在同一实体的 PositionComponent 中。
// 火箭实体永不销毁，只会被复位到发射姿态。
type ActorComponent struct {
	// Rotation 旋转角（弧度）
	Rotation float64

	// Scale 统一缩放
	Scale float64

	// Visible 是否可见（爆炸期间隐藏）
	Visible bool

	// Alpha 不透明度（0-1）
	Alpha float64
}
