package systems

import (
	"log"
	"reflect"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

// AnimationSystem 管理序列帧动画（爆炸动画）的播放
type AnimationSystem struct {
	entityManager *ecs.EntityManager
	sessions      *SessionTracker
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager, sessions *SessionTracker) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
		sessions:      sessions,
	}
}

// Update 更新所有动画实体的帧
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := s.entityManager.GetEntitiesWith(
		reflect.TypeOf(&components.AnimationComponent{}),
	)
	ecs.SortEntityIDs(entities)

	for _, id := range entities {
		animComp, _ := s.entityManager.GetComponent(id, reflect.TypeOf(&components.AnimationComponent{}))
		anim := animComp.(*components.AnimationComponent)

		// 会话失效：停止动画并销毁实体
		if !s.sessions.IsCurrent(anim.Session) {
			if !anim.IsFinished {
				log.Printf("[AnimationSystem] 动画被中止 (实体ID: %d, 会话: %d)", id, anim.Session)
			}
			anim.IsFinished = true
			anim.OnComplete = nil
			s.entityManager.DestroyEntity(id)
			continue
		}

		// 如果动画已完成且非循环,跳过
		if anim.IsFinished || anim.FrameCount <= 0 {
			continue
		}

		if anim.CurrentFrame == 0 && anim.FrameCounter == 0 && deltaTime > 0 {
			log.Printf("[AnimationSystem] 开始播放动画 (实体ID: %d, 帧数: %d, 循环: %v)", id, anim.FrameCount, anim.IsLooping)
		}

		anim.FrameCounter += deltaTime

		// 大 dt 时一次可能前进多帧
		for anim.FrameCounter >= anim.FrameSpeed && !anim.IsFinished {
			anim.FrameCounter -= anim.FrameSpeed
			anim.CurrentFrame++

			if anim.CurrentFrame < anim.FrameCount {
				continue
			}

			if anim.IsLooping {
				anim.CurrentFrame = 0
				continue
			}

			// 非循环动画: 停在最后一帧并标记完成
			anim.CurrentFrame = anim.FrameCount - 1
			anim.IsFinished = true
			log.Printf("[AnimationSystem] 动画播放完成 (实体ID: %d)，停在最后一帧", id)

			if anim.OnComplete != nil {
				callback := anim.OnComplete
				anim.OnComplete = nil
				callback()
			}
		}
	}
}
