package systems

import (
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
	"github.com/decker502/rocket/pkg/utils"
)

// CameraShakeSystem 镜头抖动系统
//
// 抖动组件挂在场景实体上，每帧把场景偏移设为
// origin + 随机抖动（振幅按剩余时间线性衰减）。
// 抖动到期、被取消或会话失效时，偏移精确恢复到 origin。
type CameraShakeSystem struct {
	entityManager *ecs.EntityManager
	sessions      *SessionTracker
	rng           *utils.PRNG
	sceneEntity   ecs.EntityID
}

// NewCameraShakeSystem 创建镜头抖动系统
func NewCameraShakeSystem(em *ecs.EntityManager, sessions *SessionTracker, rng *utils.PRNG, sceneEntity ecs.EntityID) *CameraShakeSystem {
	return &CameraShakeSystem{
		entityManager: em,
		sessions:      sessions,
		rng:           rng,
		sceneEntity:   sceneEntity,
	}
}

// Start 开始抖动
//
// 如果已有抖动在进行，沿用其 origin（即最初抖动前的偏移），避免把抖动中的偏移当作原点。
func (cs *CameraShakeSystem) Start(session uint64, intensity, duration float64) {
	scene, ok := ecs.GetComponent[*components.SceneComponent](cs.entityManager, cs.sceneEntity)
	if !ok {
		return
	}

	originX, originY := scene.OffsetX, scene.OffsetY
	if existing, ok := ecs.GetComponent[*components.ShakeComponent](cs.entityManager, cs.sceneEntity); ok {
		originX, originY = existing.OriginX, existing.OriginY
	}

	ecs.AddComponent(cs.entityManager, cs.sceneEntity, &components.ShakeComponent{
		Session:   session,
		Intensity: intensity,
		Duration:  duration,
		OriginX:   originX,
		OriginY:   originY,
	})
	log.Printf("[CameraShakeSystem] Shake started: intensity=%.1f duration=%.2fs session=%d", intensity, duration, session)
}

// Update 推进抖动
func (cs *CameraShakeSystem) Update(dt float64) {
	shake, ok := ecs.GetComponent[*components.ShakeComponent](cs.entityManager, cs.sceneEntity)
	if !ok {
		return
	}
	scene, ok := ecs.GetComponent[*components.SceneComponent](cs.entityManager, cs.sceneEntity)
	if !ok {
		return
	}

	if !cs.sessions.IsCurrent(shake.Session) {
		cs.finish(scene, shake, "stale session")
		return
	}

	shake.Elapsed += dt
	if shake.Elapsed >= shake.Duration {
		cs.finish(scene, shake, "expired")
		return
	}

	amplitude := shake.Intensity * (1 - shake.Elapsed/shake.Duration)
	scene.OffsetX = shake.OriginX + cs.rng.Symmetric(amplitude)
	scene.OffsetY = shake.OriginY + cs.rng.Symmetric(amplitude)
}

// Cancel 立即停止抖动并恢复原点
func (cs *CameraShakeSystem) Cancel() {
	shake, ok := ecs.GetComponent[*components.ShakeComponent](cs.entityManager, cs.sceneEntity)
	if !ok {
		return
	}
	scene, ok := ecs.GetComponent[*components.SceneComponent](cs.entityManager, cs.sceneEntity)
	if !ok {
		return
	}
	cs.finish(scene, shake, "cancelled")
}

// IsShaking 是否有抖动在进行
func (cs *CameraShakeSystem) IsShaking() bool {
	return ecs.HasComponent[*components.ShakeComponent](cs.entityManager, cs.sceneEntity)
}

func (cs *CameraShakeSystem) finish(scene *components.SceneComponent, shake *components.ShakeComponent, reason string) {
	scene.OffsetX = shake.OriginX
	scene.OffsetY = shake.OriginY
	ecs.RemoveComponent[*components.ShakeComponent](cs.entityManager, cs.sceneEntity)
	log.Printf("[CameraShakeSystem] Shake ended (%s), offset restored to (%.1f, %.1f)", reason, shake.OriginX, shake.OriginY)
}
