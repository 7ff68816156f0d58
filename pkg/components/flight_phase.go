package components

// FlightPhase 火箭生命周期阶段
//
// 合法的阶段边：
//
//	Idle -> Preparing -> Shooting -> Flying -> Exploding -> Idle
//	Idle -> Shooting（未启用 Preparing 时）
//	Preparing/Shooting -> Exploding（手动引爆）
//	任意阶段 -> Idle（Reset）
type FlightPhase int

const (
	// PhaseIdle 待发射，火箭停在发射姿态
	PhaseIdle FlightPhase = iota
	// PhasePreparing 点火下沉（可选阶段）
	PhasePreparing
	// PhaseShooting 高速上升
	PhaseShooting
	// PhaseFlying 减速上升并大幅摆动
	PhaseFlying
	// PhaseExploding 爆炸效果序列进行中
	PhaseExploding
)

// String 返回阶段名称（日志使用）
func (p FlightPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreparing:
		return "Preparing"
	case PhaseShooting:
		return "Shooting"
	case PhaseFlying:
		return "Flying"
	case PhaseExploding:
		return "Exploding"
	default:
		return "Unknown"
	}
}

// Label 返回界面显示用的阶段文字
func (p FlightPhase) Label() string {
	switch p {
	case PhaseIdle:
		return "Ready for launch"
	case PhasePreparing:
		return "Ignition..."
	case PhaseShooting:
		return "Lift-off!"
	case PhaseFlying:
		return "Climbing"
	case PhaseExploding:
		return "BOOM!"
	default:
		return ""
	}
}

// IsValid 是否为五个已定义阶段之一
func (p FlightPhase) IsValid() bool {
	return p >= PhaseIdle && p <= PhaseExploding
}

// IsAirborne 火箭是否处于由运动控制器驱动的阶段
func (p FlightPhase) IsAirborne() bool {
	return p == PhasePreparing || p == PhaseShooting || p == PhaseFlying
}

// PhaseChange 阶段切换事件
type PhaseChange struct {
	From FlightPhase
	To   FlightPhase
	// Cause 触发原因: "launch", "explode", "reset", "auto", "sequence"
	Cause string
}

// CanTransition 检查 from -> to 是否为合法的阶段边
//
// Reset 可以从任意阶段回到 Idle（包括 Idle 自身）。
func CanTransition(from, to FlightPhase) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if to == PhaseIdle {
		return true
	}
	switch from {
	case PhaseIdle:
		return to == PhasePreparing || to == PhaseShooting
	case PhasePreparing:
		return to == PhaseShooting || to == PhaseExploding
	case PhaseShooting:
		return to == PhaseFlying || to == PhaseExploding
	case PhaseFlying:
		return to == PhaseExploding
	}
	return false
}
