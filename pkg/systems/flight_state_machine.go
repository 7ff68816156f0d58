package systems

import (
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
)

// 阶段切换原因
const (
	CauseLaunch   = "launch"
	CauseExplode  = "explode"
	CauseReset    = "reset"
	CauseAuto     = "auto"
	CauseSequence = "sequence"
)

// FlightStateMachine 火箭生命周期状态机
//
// 职责：
//   - 持有唯一的阶段单元（phase），其他系统只能通过 Phase() 读取或 Subscribe 订阅
//   - 校验外部命令 Launch/Explode/Reset，非法命令静默忽略
//   - 每帧驱动运动控制器并检查自动转换
//   - 持有火箭实体（永不销毁，只复位）
type FlightStateMachine struct {
	entityManager *ecs.EntityManager
	config        *config.RocketConfig
	motion        *MotionController

	sceneEntity ecs.EntityID
	actorEntity ecs.EntityID

	phase     components.FlightPhase
	listeners []func(components.PhaseChange)

	// notifying 防止监听器在回调中递归触发转换时重入
	notifying bool
	pending   []components.PhaseChange
}

// NewFlightStateMachine 创建状态机并生成处于发射姿态的火箭实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 火箭配置
//   - motion: 运动控制器
//   - sceneEntity: 持有 SceneComponent 的场景实体（提供视口尺寸）
func NewFlightStateMachine(em *ecs.EntityManager, cfg *config.RocketConfig, motion *MotionController, sceneEntity ecs.EntityID) *FlightStateMachine {
	fsm := &FlightStateMachine{
		entityManager: em,
		config:        cfg,
		motion:        motion,
		sceneEntity:   sceneEntity,
		phase:         components.PhaseIdle,
	}

	fsm.actorEntity = em.CreateEntity()
	ecs.AddComponent(em, fsm.actorEntity, &components.PositionComponent{})
	ecs.AddComponent(em, fsm.actorEntity, &components.ActorComponent{})
	fsm.restoreLaunchPose()

	return fsm
}

// Phase 返回当前阶段
func (fsm *FlightStateMachine) Phase() components.FlightPhase {
	return fsm.phase
}

// ActorEntity 返回火箭实体 ID
func (fsm *FlightStateMachine) ActorEntity() ecs.EntityID {
	return fsm.actorEntity
}

// ActorPosition 返回火箭当前位置
func (fsm *FlightStateMachine) ActorPosition() (float64, float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](fsm.entityManager, fsm.actorEntity)
	if !ok {
		return 0, 0
	}
	return pos.X, pos.Y
}

// Subscribe 订阅阶段切换事件
// 回调在切换完成后（Phase() 已返回新值）同步调用
func (fsm *FlightStateMachine) Subscribe(listener func(components.PhaseChange)) {
	if listener == nil {
		return
	}
	fsm.listeners = append(fsm.listeners, listener)
}

// Launch 发射：只在 Idle 有效
func (fsm *FlightStateMachine) Launch() {
	if fsm.phase != components.PhaseIdle {
		log.Printf("[FlightStateMachine] Launch ignored in phase %s", fsm.phase)
		return
	}

	next := components.PhaseShooting
	if fsm.config.Flight.PrepareEnabled {
		next = components.PhasePreparing
	}
	fsm.transition(next, CauseLaunch)
}

// Explode 手动引爆：只在 Preparing/Shooting/Flying 有效
func (fsm *FlightStateMachine) Explode() {
	if !fsm.phase.IsAirborne() {
		log.Printf("[FlightStateMachine] Explode ignored in phase %s", fsm.phase)
		return
	}
	fsm.transition(components.PhaseExploding, CauseExplode)
}

// Reset 从任意阶段立即回到 Idle 并恢复发射姿态
//
// 即使当前已是 Idle 也会广播事件，监听者据此取消残留的效果会话。
func (fsm *FlightStateMachine) Reset() {
	fsm.restoreLaunchPose()
	fsm.transition(components.PhaseIdle, CauseReset)
}

// CompleteSequence 爆炸序列自然结束后回到 Idle（由 EffectSequencer 的复位计时器调用）
func (fsm *FlightStateMachine) CompleteSequence() {
	if fsm.phase != components.PhaseExploding {
		log.Printf("[FlightStateMachine] CompleteSequence ignored in phase %s", fsm.phase)
		return
	}
	fsm.restoreLaunchPose()
	fsm.transition(components.PhaseIdle, CauseSequence)
}

// HideActor 隐藏火箭（引爆瞬间由 EffectSequencer 调用）
func (fsm *FlightStateMachine) HideActor() {
	actor, ok := ecs.GetComponent[*components.ActorComponent](fsm.entityManager, fsm.actorEntity)
	if !ok {
		return
	}
	actor.Visible = false
}

// Update 推进火箭运动并检查自动转换
//
// 参数:
//   - clock: 场景时钟（秒）
//   - dt: 本帧时长（秒）
func (fsm *FlightStateMachine) Update(clock, dt float64) {
	if !fsm.phase.IsAirborne() {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](fsm.entityManager, fsm.actorEntity)
	if !ok {
		return
	}
	actor, ok := ecs.GetComponent[*components.ActorComponent](fsm.entityManager, fsm.actorEntity)
	if !ok {
		return
	}

	step := fsm.motion.Step(fsm.phase, clock, dt)
	pos.X += step.DX
	pos.Y += step.DY
	actor.Rotation = step.Rotation

	fsm.checkTransitions(pos.Y)
}

// checkTransitions 检查运动谓词触发的自动转换（每帧最多一次）
func (fsm *FlightStateMachine) checkTransitions(y float64) {
	_, height := fsm.viewport()
	if next, ok := fsm.motion.NextPhase(fsm.phase, y, height); ok {
		fsm.transition(next, CauseAuto)
	}
}

// OnViewportChanged 视口尺寸变化后调用，Idle 状态下发射姿态跟随新尺寸
func (fsm *FlightStateMachine) OnViewportChanged() {
	if fsm.phase == components.PhaseIdle {
		fsm.restoreLaunchPose()
	}
}

// LaunchPosition 返回当前视口下的发射点
func (fsm *FlightStateMachine) LaunchPosition() (float64, float64) {
	width, height := fsm.viewport()
	return width / 2, fsm.config.LaunchY(height)
}

func (fsm *FlightStateMachine) viewport() (float64, float64) {
	scene, ok := ecs.GetComponent[*components.SceneComponent](fsm.entityManager, fsm.sceneEntity)
	if !ok {
		return fsm.config.Viewport.Width, fsm.config.Viewport.Height
	}
	return scene.Width, scene.Height
}

// restoreLaunchPose 恢复发射姿态：水平居中、距底部 LaunchOffsetY、无旋转、可见
func (fsm *FlightStateMachine) restoreLaunchPose() {
	pos, ok := ecs.GetComponent[*components.PositionComponent](fsm.entityManager, fsm.actorEntity)
	if ok {
		pos.X, pos.Y = fsm.LaunchPosition()
	}

	actor, ok := ecs.GetComponent[*components.ActorComponent](fsm.entityManager, fsm.actorEntity)
	if ok {
		actor.Rotation = 0
		actor.Scale = fsm.config.Flight.ActorScale
		actor.Visible = true
		actor.Alpha = 1.0
	}
}

// transition 写入阶段单元并通知订阅者
func (fsm *FlightStateMachine) transition(to components.FlightPhase, cause string) {
	from := fsm.phase
	if !components.CanTransition(from, to) {
		log.Printf("[FlightStateMachine] Rejected edge %s -> %s (%s)", from, to, cause)
		return
	}

	fsm.phase = to
	log.Printf("[FlightStateMachine] %s: %s -> %s", cause, from, to)

	change := components.PhaseChange{From: from, To: to, Cause: cause}
	if fsm.notifying {
		fsm.pending = append(fsm.pending, change)
		return
	}

	fsm.notifying = true
	fsm.notify(change)
	for len(fsm.pending) > 0 {
		next := fsm.pending[0]
		fsm.pending = fsm.pending[1:]
		fsm.notify(next)
	}
	fsm.notifying = false
}

func (fsm *FlightStateMachine) notify(change components.PhaseChange) {
	for _, listener := range fsm.listeners {
		listener(change)
	}
}
