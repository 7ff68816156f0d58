package systems

import (
	"testing"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

func newTestAnimation(em *ecs.EntityManager, session uint64, frames int, fps float64, looping bool, onComplete func()) *components.AnimationComponent {
	id := em.CreateEntity()
	anim := &components.AnimationComponent{
		Session:    session,
		FrameCount: frames,
		FrameSpeed: 1.0 / fps,
		IsLooping:  looping,
		Scale:      1,
		OnComplete: onComplete,
	}
	ecs.AddComponent(em, id, anim)
	return anim
}

// TestAnimationSystem_PlayOnce 非循环动画按帧率播放，结束时回调一次
func TestAnimationSystem_PlayOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	sessions := NewSessionTracker()
	as := NewAnimationSystem(em, sessions)

	completed := 0
	anim := newTestAnimation(em, sessions.Begin(), 16, 24, false, func() { completed++ })

	// 16 帧 / 24fps ≈ 0.667s ≈ 40 个 60Hz 帧
	ticks := 0
	for !anim.IsFinished && ticks < 200 {
		as.Update(testDT)
		ticks++
		if anim.CurrentFrame < 0 || anim.CurrentFrame >= 16 {
			t.Fatalf("frame index %d out of range", anim.CurrentFrame)
		}
	}

	if ticks < 39 || ticks > 41 {
		t.Errorf("animation finished after %d ticks, want ~40", ticks)
	}
	if anim.CurrentFrame != 15 {
		t.Errorf("finished on frame %d, want last frame 15", anim.CurrentFrame)
	}

	for i := 0; i < 10; i++ {
		as.Update(testDT)
	}
	if completed != 1 {
		t.Errorf("OnComplete called %d times, want 1", completed)
	}
}

// TestAnimationSystem_Looping 循环动画回到第 0 帧且不触发完成
func TestAnimationSystem_Looping(t *testing.T) {
	em := ecs.NewEntityManager()
	sessions := NewSessionTracker()
	as := NewAnimationSystem(em, sessions)

	completed := false
	anim := newTestAnimation(em, sessions.Begin(), 4, 10, true, func() { completed = true })

	seenWrap := false
	prev := 0
	for i := 0; i < 60; i++ {
		as.Update(testDT)
		if anim.CurrentFrame < prev {
			seenWrap = true
		}
		prev = anim.CurrentFrame
	}

	if !seenWrap {
		t.Error("looping animation never wrapped to frame 0")
	}
	if completed || anim.IsFinished {
		t.Error("looping animation should never finish")
	}
}

// TestAnimationSystem_LargeDT 大 dt 一次前进多帧
func TestAnimationSystem_LargeDT(t *testing.T) {
	em := ecs.NewEntityManager()
	sessions := NewSessionTracker()
	as := NewAnimationSystem(em, sessions)

	anim := newTestAnimation(em, sessions.Begin(), 10, 10, false, nil)
	as.Update(0.35)

	if anim.CurrentFrame != 3 {
		t.Errorf("frame after 0.35s at 10fps = %d, want 3", anim.CurrentFrame)
	}
}

// TestAnimationSystem_StaleSessionStops 会话失效的动画被停止，不再回调
func TestAnimationSystem_StaleSessionStops(t *testing.T) {
	em := ecs.NewEntityManager()
	sessions := NewSessionTracker()
	as := NewAnimationSystem(em, sessions)

	completed := false
	anim := newTestAnimation(em, sessions.Begin(), 2, 60, false, func() { completed = true })

	sessions.Invalidate()
	for i := 0; i < 10; i++ {
		as.Update(testDT)
		em.RemoveMarkedEntities()
	}

	if completed {
		t.Error("stale animation must not call OnComplete")
	}
	if !anim.IsFinished {
		t.Error("stale animation should be marked finished")
	}
	if n := len(ecs.GetEntitiesWith1[*components.AnimationComponent](em)); n != 0 {
		t.Errorf("%d animation entities left", n)
	}
}
