package systems

import (
	"testing"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

// launchToFlying 发射并推进到 Flying 阶段
func launchToFlying(t *testing.T, fs *FrameScheduler) {
	t.Helper()
	fs.Launch()
	if runUntil(fs, 300, func() bool { return fs.Phase() == components.PhaseFlying }) < 0 {
		t.Fatalf("never reached Flying, phase = %s", fs.Phase())
	}
}

// TestEffectSequencer_Detonate 进入 Exploding 时生成全部效果单元并隐藏火箭
func TestEffectSequencer_Detonate(t *testing.T) {
	fs := newTestScheduler(false)
	launchToFlying(t, fs)

	var hookX, hookY float64
	hookCalls := 0
	fs.OnDetonate(func(x, y float64) {
		hookCalls++
		hookX, hookY = x, y
	})

	ax, ay := fs.ActorPosition()
	fs.Explode()

	if fs.Phase() != components.PhaseExploding {
		t.Fatalf("phase = %s, want Exploding", fs.Phase())
	}
	if hookCalls != 1 || hookX != ax || hookY != ay {
		t.Errorf("detonate hook calls=%d at (%.1f, %.1f), want 1 at (%.1f, %.1f)", hookCalls, hookX, hookY, ax, ay)
	}

	snap := fs.Snapshot()
	if snap.Actor.Visible {
		t.Error("actor should be hidden immediately on detonation")
	}
	if len(snap.Particles) != 50 {
		t.Errorf("particles = %d, want 50", len(snap.Particles))
	}
	if fs.rings.ActiveRings() != 5 {
		t.Errorf("rings = %d, want 5", fs.rings.ActiveRings())
	}
	if len(snap.Rings) != 1 {
		t.Errorf("visible rings = %d, want only the first one before any delay elapses", len(snap.Rings))
	}
	if !fs.shake.IsShaking() {
		t.Error("camera shake should be running")
	}
	if !snap.Detonation.Visible || snap.Detonation.Frame != 0 || snap.Detonation.Scale != 2.5 {
		t.Errorf("detonation view = %+v, want visible frame 0 at scale 2.5", snap.Detonation)
	}
	for _, p := range snap.Particles {
		if p.X != ax || p.Y != ay {
			t.Fatalf("particle spawned at (%.1f, %.1f), want actor position (%.1f, %.1f)", p.X, p.Y, ax, ay)
		}
	}
}

// TestEffectSequencer_NaturalCompletion 动画结束 + 延迟后回到 Idle
func TestEffectSequencer_NaturalCompletion(t *testing.T) {
	fs := newTestScheduler(false)
	launchToFlying(t, fs)
	fs.Explode()

	var causes []string
	fs.Subscribe(func(c components.PhaseChange) { causes = append(causes, c.Cause) })

	// 动画约 40 帧，延迟 60 帧
	ticks := runUntil(fs, 400, func() bool { return fs.Phase() == components.PhaseIdle })
	if ticks < 0 {
		t.Fatalf("never returned to Idle, phase = %s", fs.Phase())
	}
	if ticks < 95 || ticks > 110 {
		t.Errorf("returned to Idle after %d ticks, want ~100 (animation + 1s delay)", ticks)
	}
	if len(causes) != 1 || causes[0] != CauseSequence {
		t.Errorf("causes = %v, want [sequence]", causes)
	}

	snap := fs.Snapshot()
	if !snap.Actor.Visible || snap.Actor.X != 400 || snap.Actor.Y != 480 {
		t.Errorf("actor = %+v, want visible at launch pose (400, 480)", snap.Actor)
	}
	if snap.OffsetX != 0 || snap.OffsetY != 0 {
		t.Errorf("scene offset = (%v, %v), want (0, 0)", snap.OffsetX, snap.OffsetY)
	}
	if len(snap.Particles) != 0 || len(snap.Rings) != 0 || snap.Detonation.Visible {
		t.Errorf("effects still visible after completion: %d particles, %d rings, detonation %v",
			len(snap.Particles), len(snap.Rings), snap.Detonation.Visible)
	}
}

// TestEffectSequencer_ResetCancelsSession Reset 取代进行中的爆炸序列
func TestEffectSequencer_ResetCancelsSession(t *testing.T) {
	fs := newTestScheduler(false)
	launchToFlying(t, fs)
	fs.Explode()
	runFrames(fs, 5)

	fs.Reset()

	snap := fs.Snapshot()
	if snap.Phase != components.PhaseIdle || !snap.Actor.Visible {
		t.Fatalf("after Reset phase=%s visible=%v", snap.Phase, snap.Actor.Visible)
	}
	if snap.OffsetX != 0 || snap.OffsetY != 0 {
		t.Errorf("shake origin not restored on Reset: (%v, %v)", snap.OffsetX, snap.OffsetY)
	}
	if len(snap.Particles) != 0 || len(snap.Rings) != 0 || snap.Detonation.Visible {
		t.Error("stale effects must not be reported in the snapshot")
	}

	runFrames(fs, 1)
	em := fs.EntityManager()
	if n := len(ecs.GetEntitiesWith1[*components.ParticleComponent](em)); n != 0 {
		t.Errorf("%d stale particles survived one tick", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.RingComponent](em)); n != 0 {
		t.Errorf("%d stale rings survived one tick", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.AnimationComponent](em)); n != 0 {
		t.Errorf("%d stale animations survived one tick", n)
	}

	// 新的飞行不受旧会话影响
	fs.Launch()
	runFrames(fs, 60)
	if fs.Phase() != components.PhaseFlying {
		t.Errorf("phase = %s after relaunch, want Flying", fs.Phase())
	}
	if snap := fs.Snapshot(); !snap.Actor.Visible {
		t.Error("relaunched actor should be visible")
	}
}

// TestEffectSequencer_ResetDuringDelay 延迟期间 Reset 取消复位计时器
func TestEffectSequencer_ResetDuringDelay(t *testing.T) {
	fs := newTestScheduler(false)
	launchToFlying(t, fs)
	fs.Explode()

	// 等待动画结束、计时器启动
	if runUntil(fs, 100, func() bool { return fs.timers.Pending() == 1 }) < 0 {
		t.Fatal("reset timer never scheduled")
	}

	fs.Reset()
	runFrames(fs, 2)
	if fs.timers.Pending() != 0 {
		t.Errorf("pending timers = %d after Reset, want 0", fs.timers.Pending())
	}

	// 重新发射，旧计时器不能提前结束新序列
	fs.Launch()
	fs.Explode()
	runFrames(fs, 60)
	if fs.Phase() != components.PhaseExploding {
		t.Errorf("phase = %s, new sequence ended early", fs.Phase())
	}
}

// TestEffectSequencer_ExplodeDuringExplodingRejected 引爆中再次 Explode 被拒绝
func TestEffectSequencer_ExplodeDuringExplodingRejected(t *testing.T) {
	fs := newTestScheduler(false)
	launchToFlying(t, fs)

	detonations := 0
	fs.OnDetonate(func(float64, float64) { detonations++ })

	fs.Explode()
	session := fs.sequencer.Session()
	runFrames(fs, 3)
	fs.Explode()

	if detonations != 1 || fs.sequencer.Session() != session {
		t.Errorf("second Explode started a new detonation (count %d, session %d -> %d)",
			detonations, session, fs.sequencer.Session())
	}
}
