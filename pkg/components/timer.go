package components

// TimerComponent 通用计时器组件
// 用于爆炸动画结束后的延迟复位。这是整个流程中唯一基于时间（而非帧条件）的挂起点
type TimerComponent struct {
	Name        string  // 计时器名称，如 "detonation_reset"
	Session     uint64  // 所属爆炸会话，会话过期后计时器被取消
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	OnFire      func()  // 到时回调（只调用一次）
}
