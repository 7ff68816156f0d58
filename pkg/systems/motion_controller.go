package systems

import (
	"math"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
)

// MotionStep 一次运动推进的结果
type MotionStep struct {
	DX       float64 // 水平位移
	DY       float64 // 竖直位移（正值向下）
	Rotation float64 // 本帧的旋转角（绝对值，不累加）
}

// MotionController 火箭运动规律
//
// 纯函数：给定阶段、场景时钟和 dt，返回位移与旋转，不持有任何可变状态。
// 线性位移按 dt * ReferenceTickRate 缩放；正弦摆动以场景时钟为相位输入。
// 阶段转换的判定谓词也放在这里，由 FlightStateMachine 每帧调用。
type MotionController struct {
	config *config.RocketConfig
}

// NewMotionController 创建运动控制器
func NewMotionController(cfg *config.RocketConfig) *MotionController {
	return &MotionController{config: cfg}
}

// lawFor 返回阶段对应的运动规律，Idle/Exploding 没有运动
func (mc *MotionController) lawFor(phase components.FlightPhase) (config.PhaseMotion, bool) {
	switch phase {
	case components.PhasePreparing:
		return mc.config.Motion.Preparing, true
	case components.PhaseShooting:
		return mc.config.Motion.Shooting, true
	case components.PhaseFlying:
		return mc.config.Motion.Flying, true
	}
	return config.PhaseMotion{}, false
}

// Step 计算一帧的运动
//
// 参数:
//   - phase: 当前阶段
//   - clock: 场景时钟（秒），作为正弦相位输入
//   - dt: 本帧时长（秒）
func (mc *MotionController) Step(phase components.FlightPhase, clock, dt float64) MotionStep {
	law, ok := mc.lawFor(phase)
	if !ok || dt <= 0 {
		return MotionStep{}
	}

	k := dt * mc.config.Flight.ReferenceTickRate

	return MotionStep{
		DX:       law.SwayAmplitude * math.Sin(clock*law.SwayFrequency) * k,
		DY:       law.StepY * k,
		Rotation: law.WobbleAmplitude * math.Sin(clock*law.WobbleFrequency),
	}
}

// ReachedPrepareFloor 点火下沉是否到达底部边界
func (mc *MotionController) ReachedPrepareFloor(y, height float64) bool {
	return y >= mc.config.PrepareFloorY(height)
}

// CrossedMidpoint 是否越过视口竖直中线
func (mc *MotionController) CrossedMidpoint(y, height float64) bool {
	return y <= height/2
}

// ReachedTop 是否到达顶部引爆阈值
func (mc *MotionController) ReachedTop(y float64) bool {
	return y <= mc.config.Flight.TopMargin
}

// NextPhase 根据当前位置判断是否需要自动转换阶段
//
// 返回:
//   - FlightPhase: 目标阶段
//   - bool: 是否需要转换
func (mc *MotionController) NextPhase(phase components.FlightPhase, y, height float64) (components.FlightPhase, bool) {
	switch phase {
	case components.PhasePreparing:
		if mc.ReachedPrepareFloor(y, height) {
			return components.PhaseShooting, true
		}
	case components.PhaseShooting:
		if mc.CrossedMidpoint(y, height) {
			return components.PhaseFlying, true
		}
	case components.PhaseFlying:
		if mc.ReachedTop(y) {
			return components.PhaseExploding, true
		}
	}
	return phase, false
}
