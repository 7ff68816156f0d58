package systems

import (
	"testing"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

// TestFrameScheduler_EndToEnd Idle -> Launch -> Flying -> Explode -> 效果 -> Idle
func TestFrameScheduler_EndToEnd(t *testing.T) {
	fs := newTestScheduler(true)

	var edges []components.PhaseChange
	fs.Subscribe(func(c components.PhaseChange) { edges = append(edges, c) })

	if fs.Phase() != components.PhaseIdle {
		t.Fatalf("initial phase = %s", fs.Phase())
	}

	fs.Launch()
	if runUntil(fs, 300, func() bool { return fs.Phase() == components.PhaseFlying }) < 0 {
		t.Fatalf("never reached Flying, phase = %s", fs.Phase())
	}
	if fs.Altitude() <= 0 {
		t.Errorf("altitude = %.1f in Flying, want > 0", fs.Altitude())
	}

	fs.Explode()
	snap := fs.Snapshot()
	if snap.Phase != components.PhaseExploding || snap.Actor.Visible {
		t.Fatalf("after Explode: phase=%s visible=%v", snap.Phase, snap.Actor.Visible)
	}
	if len(snap.Particles) != 50 || fs.rings.ActiveRings() != 5 {
		t.Fatalf("after Explode: %d particles, %d rings, want 50 and 5", len(snap.Particles), fs.rings.ActiveRings())
	}
	// 只有第一个环立即出现，颜色来自 rings.color
	if len(snap.Rings) != 1 || snap.Rings[0].Color != fs.rings.Color() {
		t.Fatalf("after Explode: snapshot rings = %+v, want one ring colored %v", snap.Rings, fs.rings.Color())
	}

	if runUntil(fs, 400, func() bool { return fs.Phase() == components.PhaseIdle }) < 0 {
		t.Fatalf("never returned to Idle")
	}
	snap = fs.Snapshot()
	if !snap.Actor.Visible || snap.Actor.X != 400 || snap.Actor.Y != 480 || snap.Actor.Rotation != 0 {
		t.Errorf("final actor = %+v, want visible launch pose", snap.Actor)
	}

	want := []components.FlightPhase{
		components.PhasePreparing,
		components.PhaseShooting,
		components.PhaseFlying,
		components.PhaseExploding,
		components.PhaseIdle,
	}
	if len(edges) != len(want) {
		t.Fatalf("edges = %+v, want targets %v", edges, want)
	}
	for i, e := range edges {
		if e.To != want[i] || !components.CanTransition(e.From, e.To) {
			t.Errorf("edge %d = %s -> %s, want -> %s", i, e.From, e.To, want[i])
		}
	}

	// 效果单元全部结束，实体只剩场景和火箭
	runFrames(fs, 5)
	if n := fs.EntityManager().EntityCount(); n != 2 {
		t.Errorf("entity count after sequence = %d, want 2 (scene + actor)", n)
	}
}

// TestFrameScheduler_AutoDetonation 不干预时火箭到达顶部后自动引爆并最终复位
func TestFrameScheduler_AutoDetonation(t *testing.T) {
	fs := newTestScheduler(true)
	fs.Launch()

	if runUntil(fs, 400, func() bool { return fs.Phase() == components.PhaseExploding }) < 0 {
		t.Fatalf("never auto-detonated, phase = %s", fs.Phase())
	}
	if runUntil(fs, 400, func() bool { return fs.Phase() == components.PhaseIdle }) < 0 {
		t.Fatalf("never returned to Idle after auto-detonation")
	}
}

// TestFrameScheduler_SpawnedUnitsTickNextFrame 转换中生成的效果单元从下一帧开始推进
func TestFrameScheduler_SpawnedUnitsTickNextFrame(t *testing.T) {
	fs := newTestScheduler(false)
	fs.Launch()

	if runUntil(fs, 400, func() bool { return fs.Phase() == components.PhaseExploding }) < 0 {
		t.Fatal("never auto-detonated")
	}

	em := fs.EntityManager()
	bursts := ecs.GetEntitiesWith1[*components.BurstComponent](em)
	if len(bursts) != 1 {
		t.Fatalf("bursts = %d, want 1", len(bursts))
	}
	burst, _ := ecs.GetComponent[*components.BurstComponent](em, bursts[0])
	if burst.TicksRun != 0 {
		t.Errorf("burst ticked %d times in its spawn frame, want 0", burst.TicksRun)
	}

	fs.Update(testDT)
	if burst.TicksRun != 1 {
		t.Errorf("burst TicksRun = %d on the next frame, want 1", burst.TicksRun)
	}
}

// TestFrameScheduler_ResetAtAnyTick 任意时刻 Reset 都立即得到 Idle 和发射姿态
func TestFrameScheduler_ResetAtAnyTick(t *testing.T) {
	for resetAt := 0; resetAt <= 260; resetAt += 13 {
		fs := newTestScheduler(true)
		fs.Launch()
		runFrames(fs, resetAt)
		if resetAt%3 == 0 {
			fs.Explode()
			runFrames(fs, 2)
		}

		before := fs.Phase()
		fs.Reset()
		snap := fs.Snapshot()

		if snap.Phase != components.PhaseIdle {
			t.Errorf("reset at tick %d (%s): phase = %s", resetAt, before, snap.Phase)
		}
		if !snap.Actor.Visible || snap.Actor.X != 400 || snap.Actor.Y != 480 || snap.Actor.Rotation != 0 || snap.Actor.Alpha != 1 {
			t.Errorf("reset at tick %d (%s): actor = %+v", resetAt, before, snap.Actor)
		}
		if snap.OffsetX != 0 || snap.OffsetY != 0 {
			t.Errorf("reset at tick %d (%s): offset = (%v, %v)", resetAt, before, snap.OffsetX, snap.OffsetY)
		}

		// Reset 之后保持 Idle，残留单元清理干净
		runFrames(fs, 150)
		if fs.Phase() != components.PhaseIdle {
			t.Errorf("reset at tick %d: phase drifted to %s", resetAt, fs.Phase())
		}
		if n := fs.EntityManager().EntityCount(); n != 2 {
			t.Errorf("reset at tick %d: %d entities left, want 2", resetAt, n)
		}
	}
}

// TestFrameScheduler_SetViewport 视口变化时 Idle 姿态跟随，中线阈值使用新高度
func TestFrameScheduler_SetViewport(t *testing.T) {
	fs := newTestScheduler(false)
	fs.SetViewport(1024, 768)

	if w, h := fs.Viewport(); w != 1024 || h != 768 {
		t.Fatalf("viewport = %.0fx%.0f, want 1024x768", w, h)
	}
	if x, y := fs.ActorPosition(); x != 512 || y != 648 {
		t.Errorf("Idle pose = (%.1f, %.1f), want (512, 648)", x, y)
	}

	// 648 -> 384，ceil(264 / 8) = 33
	fs.Launch()
	ticks := runUntil(fs, 200, func() bool { return fs.Phase() == components.PhaseFlying })
	if ticks != 33 {
		t.Errorf("reached Flying after %d ticks, want 33", ticks)
	}

	// 非法尺寸被忽略
	fs.SetViewport(0, -1)
	if w, h := fs.Viewport(); w != 1024 || h != 768 {
		t.Errorf("invalid viewport applied: %.0fx%.0f", w, h)
	}
}

// TestFrameScheduler_Deterministic 相同种子产生相同的帧序列
func TestFrameScheduler_Deterministic(t *testing.T) {
	run := func() []FrameSnapshot {
		fs := newTestScheduler(true)
		fs.Launch()
		var out []FrameSnapshot
		for i := 0; i < 160; i++ {
			if i == 60 {
				fs.Explode()
			}
			fs.Update(testDT)
			out = append(out, fs.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Actor != b[i].Actor || a[i].OffsetX != b[i].OffsetX || a[i].OffsetY != b[i].OffsetY {
			t.Fatalf("frame %d differs between identical runs", i)
		}
		if len(a[i].Particles) != len(b[i].Particles) {
			t.Fatalf("frame %d particle count differs: %d vs %d", i, len(a[i].Particles), len(b[i].Particles))
		}
		for j := range a[i].Particles {
			if a[i].Particles[j] != b[i].Particles[j] {
				t.Fatalf("frame %d particle %d differs", i, j)
			}
		}
	}
}

// TestFrameScheduler_NegativeDT 负 dt 视为 0
func TestFrameScheduler_NegativeDT(t *testing.T) {
	fs := newTestScheduler(false)
	fs.Launch()
	x, y := fs.ActorPosition()

	fs.Update(-1)
	if nx, ny := fs.ActorPosition(); nx != x || ny != y {
		t.Errorf("negative dt moved the actor: (%.1f, %.1f) -> (%.1f, %.1f)", x, y, nx, ny)
	}
	if fs.Clock() != 0 || fs.Frame() != 1 {
		t.Errorf("clock=%.3f frame=%d, want 0 and 1", fs.Clock(), fs.Frame())
	}
}
