package components

// AnimationComponent 管理基于序列帧的动画（爆炸动画）
//
// 只记录帧索引，图像由渲染外壳通过 ResourceManager 按索引解析，
// 这样动画逻辑不依赖具体的图形后端。
type AnimationComponent struct {
	// Session 所属爆炸会话
	Session uint64

	FrameCount   int     // 动画总帧数
	FrameSpeed   float64 // 每帧之间的延迟时间(秒)
	FrameCounter float64 // 当前帧计时器(秒)
	CurrentFrame int     // 当前显示的帧索引(0-based)
	IsLooping    bool    // 是否循环播放
	IsFinished   bool    // 动画是否已完成(仅对非循环动画有效)

	// Scale 播放时的缩放
	Scale float64

	// OnComplete 非循环动画播放完成时调用一次
	OnComplete func()
}
