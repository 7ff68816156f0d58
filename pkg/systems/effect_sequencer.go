package systems

import (
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
)

// DetonationResetTimer 爆炸结束后复位计时器的名称
const DetonationResetTimer = "detonation_reset"

// EffectSequencer 爆炸效果编排
//
// 订阅 FlightStateMachine 的阶段事件：
//   - 进入 Exploding：开始新会话，隐藏火箭，生成粒子批次、冲击波环、镜头抖动和爆炸动画
//   - 爆炸动画完成：启动 ResetDelay 计时器，到时调用 CompleteSequence 回到 Idle
//   - Reset：使当前会话失效，取消计时器、停止动画、恢复镜头，残留粒子和环在下一帧被拆除
//
// 引爆期间再次 Explode 会被状态机拒绝，因此同一时刻最多只有一个有效会话。
type EffectSequencer struct {
	entityManager *ecs.EntityManager
	config        *config.RocketConfig

	stateMachine *FlightStateMachine
	sessions     *SessionTracker
	particles    *ParticleSystem
	rings        *RingSystem
	shake        *CameraShakeSystem
	timers       *TimerSystem

	session         uint64
	animationEntity ecs.EntityID

	detonateHooks []func(x, y float64)
}

// NewEffectSequencer 创建效果编排器并订阅状态机
func NewEffectSequencer(
	em *ecs.EntityManager,
	cfg *config.RocketConfig,
	fsm *FlightStateMachine,
	sessions *SessionTracker,
	particles *ParticleSystem,
	rings *RingSystem,
	shake *CameraShakeSystem,
	timers *TimerSystem,
) *EffectSequencer {
	es := &EffectSequencer{
		entityManager: em,
		config:        cfg,
		stateMachine:  fsm,
		sessions:      sessions,
		particles:     particles,
		rings:         rings,
		shake:         shake,
		timers:        timers,
	}
	fsm.Subscribe(es.onPhaseChange)
	return es
}

// OnDetonate 注册引爆回调（音效等），参数为爆炸位置
func (es *EffectSequencer) OnDetonate(hook func(x, y float64)) {
	if hook == nil {
		return
	}
	es.detonateHooks = append(es.detonateHooks, hook)
}

// Session 返回最近一次引爆的会话令牌
func (es *EffectSequencer) Session() uint64 {
	return es.session
}

// AnimationEntity 返回当前爆炸动画实体（0 表示没有）
func (es *EffectSequencer) AnimationEntity() ecs.EntityID {
	if es.animationEntity == 0 || !es.sessions.IsCurrent(es.session) {
		return 0
	}
	if !es.entityManager.Exists(es.animationEntity) {
		return 0
	}
	return es.animationEntity
}

func (es *EffectSequencer) onPhaseChange(change components.PhaseChange) {
	switch {
	case change.To == components.PhaseExploding:
		es.detonate()
	case change.Cause == CauseReset:
		es.cancel()
	}
}

// detonate 启动一次完整的爆炸效果序列
func (es *EffectSequencer) detonate() {
	es.shake.Cancel()
	session := es.sessions.Begin()
	es.session = session

	x, y := es.stateMachine.ActorPosition()
	es.stateMachine.HideActor()

	es.particles.SpawnBurst(session, x, y)
	es.rings.SpawnRings(session, x, y)
	es.shake.Start(session, es.config.Shake.Intensity, es.config.Shake.Duration)

	det := es.config.Detonation
	es.animationEntity = es.entityManager.CreateEntity()
	ecs.AddComponent(es.entityManager, es.animationEntity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(es.entityManager, es.animationEntity, &components.AnimationComponent{
		Session:    session,
		FrameCount: det.FrameCount,
		FrameSpeed: 1.0 / det.FrameRate,
		Scale:      det.Scale,
		OnComplete: func() { es.onAnimationComplete(session) },
	})

	log.Printf("[EffectSequencer] Detonation at (%.1f, %.1f), session %d", x, y, session)

	for _, hook := range es.detonateHooks {
		hook(x, y)
	}
}

func (es *EffectSequencer) onAnimationComplete(session uint64) {
	if !es.sessions.IsCurrent(session) {
		return
	}
	es.entityManager.DestroyEntity(es.animationEntity)
	es.animationEntity = 0

	es.timers.Schedule(DetonationResetTimer, session, es.config.Detonation.ResetDelay, func() {
		if !es.sessions.IsCurrent(session) {
			return
		}
		log.Printf("[EffectSequencer] Sequence %d complete, returning to Idle", session)
		es.stateMachine.CompleteSequence()
	})
}

// cancel 作废当前会话：镜头立即复位，其他效果单元在下一次推进时自行拆除
func (es *EffectSequencer) cancel() {
	if !es.sessions.IsCurrent(es.session) {
		es.shake.Cancel()
		return
	}
	log.Printf("[EffectSequencer] Cancelling session %d", es.session)
	es.sessions.Invalidate()
	es.shake.Cancel()
	es.animationEntity = 0
}
