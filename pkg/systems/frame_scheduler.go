package systems

import (
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
	"github.com/decker502/rocket/pkg/utils"
)

// FrameScheduler 火箭场景的唯一逐帧入口
//
// 组装所有系统并按固定顺序推进：
//  1. 已存在的效果单元（计时器、动画、粒子、冲击环、镜头抖动）
//  2. 运动控制器与自动阶段转换
//  3. 清理本帧标记删除的实体
//
// 转换中新生成的效果单元从下一帧开始推进。
// 单线程使用，不加锁。
type FrameScheduler struct {
	entityManager *ecs.EntityManager
	config        *config.RocketConfig
	rng           *utils.PRNG

	sceneEntity ecs.EntityID

	sessions     *SessionTracker
	motion       *MotionController
	stateMachine *FlightStateMachine
	particles    *ParticleSystem
	rings        *RingSystem
	shake        *CameraShakeSystem
	animation    *AnimationSystem
	timers       *TimerSystem
	sequencer    *EffectSequencer

	clock float64
	frame uint64
}

// NewFrameScheduler 创建调度器
//
// 参数:
//   - cfg: 火箭配置（nil 时使用默认配置）
//   - rng: 随机源（nil 时按 cfg.Seed 创建）
func NewFrameScheduler(cfg *config.RocketConfig, rng *utils.PRNG) *FrameScheduler {
	if cfg == nil {
		cfg = config.DefaultRocketConfig()
	}
	if rng == nil {
		rng = utils.NewPRNG(cfg.Seed)
	}

	em := ecs.NewEntityManager()
	fs := &FrameScheduler{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		sessions:      NewSessionTracker(),
	}

	fs.sceneEntity = em.CreateEntity()
	ecs.AddComponent(em, fs.sceneEntity, &components.SceneComponent{
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
	})

	fs.motion = NewMotionController(cfg)
	fs.stateMachine = NewFlightStateMachine(em, cfg, fs.motion, fs.sceneEntity)
	fs.particles = NewParticleSystem(em, cfg, fs.sessions, rng)
	fs.rings = NewRingSystem(em, cfg, fs.sessions)
	fs.shake = NewCameraShakeSystem(em, fs.sessions, rng, fs.sceneEntity)
	fs.animation = NewAnimationSystem(em, fs.sessions)
	fs.timers = NewTimerSystem(em, fs.sessions)
	fs.sequencer = NewEffectSequencer(em, cfg, fs.stateMachine, fs.sessions,
		fs.particles, fs.rings, fs.shake, fs.timers)

	log.Printf("[FrameScheduler] Initialized: viewport %.0fx%.0f, seed %d",
		cfg.Viewport.Width, cfg.Viewport.Height, rng.Seed())

	return fs
}

// Update 推进一帧
func (fs *FrameScheduler) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	fs.clock += dt
	fs.frame++

	fs.timers.Update(dt)
	fs.animation.Update(dt)
	fs.particles.Update(dt)
	fs.rings.Update(dt)
	fs.shake.Update(dt)

	fs.stateMachine.Update(fs.clock, dt)

	fs.entityManager.RemoveMarkedEntities()
}

// Launch 发射命令
func (fs *FrameScheduler) Launch() { fs.stateMachine.Launch() }

// Explode 引爆命令
func (fs *FrameScheduler) Explode() { fs.stateMachine.Explode() }

// Reset 复位命令
func (fs *FrameScheduler) Reset() { fs.stateMachine.Reset() }

// Phase 返回当前阶段
func (fs *FrameScheduler) Phase() components.FlightPhase {
	return fs.stateMachine.Phase()
}

// Subscribe 订阅阶段切换事件
func (fs *FrameScheduler) Subscribe(listener func(components.PhaseChange)) {
	fs.stateMachine.Subscribe(listener)
}

// OnDetonate 注册引爆回调
func (fs *FrameScheduler) OnDetonate(hook func(x, y float64)) {
	fs.sequencer.OnDetonate(hook)
}

// ActorPosition 返回火箭位置
func (fs *FrameScheduler) ActorPosition() (float64, float64) {
	return fs.stateMachine.ActorPosition()
}

// Altitude 返回火箭相对发射点的高度（像素，向上为正）
func (fs *FrameScheduler) Altitude() float64 {
	_, launchY := fs.stateMachine.LaunchPosition()
	_, y := fs.stateMachine.ActorPosition()
	return launchY - y
}

// SetViewport 更新视口尺寸（宿主窗口大小变化时调用）
func (fs *FrameScheduler) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	scene, ok := ecs.GetComponent[*components.SceneComponent](fs.entityManager, fs.sceneEntity)
	if !ok {
		return
	}
	if scene.Width == width && scene.Height == height {
		return
	}
	scene.Width = width
	scene.Height = height
	log.Printf("[FrameScheduler] Viewport resized to %.0fx%.0f", width, height)
	fs.stateMachine.OnViewportChanged()
}

// Viewport 返回当前视口尺寸
func (fs *FrameScheduler) Viewport() (float64, float64) {
	scene, ok := ecs.GetComponent[*components.SceneComponent](fs.entityManager, fs.sceneEntity)
	if !ok {
		return fs.config.Viewport.Width, fs.config.Viewport.Height
	}
	return scene.Width, scene.Height
}

// Clock 返回场景时钟（秒）
func (fs *FrameScheduler) Clock() float64 { return fs.clock }

// Frame 返回已推进的帧数
func (fs *FrameScheduler) Frame() uint64 { return fs.frame }

// Config 返回配置
func (fs *FrameScheduler) Config() *config.RocketConfig { return fs.config }

// RNG 返回共享随机源
func (fs *FrameScheduler) RNG() *utils.PRNG { return fs.rng }

// EntityManager 返回实体管理器（测试和渲染外壳使用）
func (fs *FrameScheduler) EntityManager() *ecs.EntityManager { return fs.entityManager }
