package config

// 布局配置常量
// 本文件定义窗口尺寸、HUD 位置等与渲染外壳相关的布局参数

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// MaxDeltaTime 单帧最大时间步长（秒）
	// 窗口拖动、断点调试等造成的长帧会被截断，避免火箭一帧穿过多个阶段边界
	MaxDeltaTime = 0.1
)

// HUD Configuration (界面文字配置)
const (
	// HUDMarginX HUD 文字左边距
	HUDMarginX = 12.0

	// HUDMarginY HUD 文字上边距
	HUDMarginY = 12.0

	// HUDLineHeight HUD 行高
	HUDLineHeight = 18.0

	// StarCount 背景星空的星星数量
	StarCount = 120
)

// Actor Shape (火箭外形，占位图尺寸)
const (
	// ActorWidth 火箭占位图宽度
	ActorWidth = 24

	// ActorHeight 火箭占位图高度
	ActorHeight = 60
)

// ClampFrameDelta 把墙钟测得的帧时间步长限制在 [0, MaxDeltaTime]
func ClampFrameDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > MaxDeltaTime {
		return MaxDeltaTime
	}
	return dt
}
