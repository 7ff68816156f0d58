package systems

import (
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

// TimerSystem 推进计时器组件，到时调用 OnFire 并销毁计时器实体
type TimerSystem struct {
	entityManager *ecs.EntityManager
	sessions      *SessionTracker
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager, sessions *SessionTracker) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
		sessions:      sessions,
	}
}

// Schedule 创建一个计时器实体
func (ts *TimerSystem) Schedule(name string, session uint64, delay float64, onFire func()) ecs.EntityID {
	id := ts.entityManager.CreateEntity()
	ecs.AddComponent(ts.entityManager, id, &components.TimerComponent{
		Name:       name,
		Session:    session,
		TargetTime: delay,
		OnFire:     onFire,
	})
	log.Printf("[TimerSystem] Scheduled %q in %.2fs (session %d)", name, delay, session)
	return id
}

// Update 推进所有计时器
func (ts *TimerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](ts.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](ts.entityManager, id)
		if !ok || timer.IsReady {
			continue
		}

		if !ts.sessions.IsCurrent(timer.Session) {
			log.Printf("[TimerSystem] Cancelled %q (stale session %d)", timer.Name, timer.Session)
			timer.IsReady = true
			timer.OnFire = nil
			ts.entityManager.DestroyEntity(id)
			continue
		}

		timer.CurrentTime += dt
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		timer.IsReady = true
		ts.entityManager.DestroyEntity(id)
		log.Printf("[TimerSystem] Fired %q", timer.Name)
		if timer.OnFire != nil {
			callback := timer.OnFire
			timer.OnFire = nil
			callback()
		}
	}
}

// Pending 返回尚未触发的计时器数量
func (ts *TimerSystem) Pending() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](ts.entityManager) {
		if timer, ok := ecs.GetComponent[*components.TimerComponent](ts.entityManager, id); ok && !timer.IsReady {
			count++
		}
	}
	return count
}
