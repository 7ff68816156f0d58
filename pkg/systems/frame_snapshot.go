package systems

import (
	"image/color"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/ecs"
)

// ActorView 火箭的渲染数据
type ActorView struct {
	X, Y     float64
	Rotation float64
	Scale    float64
	Visible  bool
	Alpha    float64
}

// Drawable 粒子或冲击环的渲染数据
type Drawable struct {
	X, Y  float64
	Scale float64
	Alpha float64
	Color color.RGBA
}

// AnimationView 爆炸动画的渲染数据
type AnimationView struct {
	X, Y    float64
	Frame   int
	Scale   float64
	Visible bool
}

// FrameSnapshot 一帧的完整输出，渲染外壳只读取它，不直接访问实体
type FrameSnapshot struct {
	Frame    uint64
	Phase    components.FlightPhase
	Altitude float64

	ViewportWidth  float64
	ViewportHeight float64
	OffsetX        float64
	OffsetY        float64

	Actor      ActorView
	Particles  []Drawable
	Rings      []Drawable
	RingRadius float64
	Detonation AnimationView
}

// Snapshot 生成当前帧的快照（只包含当前会话的效果单元）
func (fs *FrameScheduler) Snapshot() FrameSnapshot {
	em := fs.entityManager
	width, height := fs.Viewport()

	snap := FrameSnapshot{
		Frame:          fs.frame,
		Phase:          fs.stateMachine.Phase(),
		Altitude:       fs.Altitude(),
		ViewportWidth:  width,
		ViewportHeight: height,
		RingRadius:     fs.config.Rings.Radius,
	}

	if scene, ok := ecs.GetComponent[*components.SceneComponent](em, fs.sceneEntity); ok {
		snap.OffsetX = scene.OffsetX
		snap.OffsetY = scene.OffsetY
	}

	actorID := fs.stateMachine.ActorEntity()
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, actorID); ok {
		snap.Actor.X, snap.Actor.Y = pos.X, pos.Y
	}
	if actor, ok := ecs.GetComponent[*components.ActorComponent](em, actorID); ok {
		snap.Actor.Rotation = actor.Rotation
		snap.Actor.Scale = actor.Scale
		snap.Actor.Visible = actor.Visible
		snap.Actor.Alpha = actor.Alpha
	}

	for _, burstID := range ecs.GetEntitiesWith1[*components.BurstComponent](em) {
		burst, ok := ecs.GetComponent[*components.BurstComponent](em, burstID)
		if !ok || burst.Done || !fs.sessions.IsCurrent(burst.Session) {
			continue
		}
		for _, id := range burst.Particles {
			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok {
				continue
			}
			p, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
			if !ok || p.Life <= 0 {
				continue
			}
			snap.Particles = append(snap.Particles, Drawable{
				X: pos.X, Y: pos.Y, Scale: p.Scale, Alpha: p.Alpha, Color: p.Color,
			})
		}
	}

	ringColor := fs.rings.Color()
	for _, id := range ecs.GetEntitiesWith2[*components.RingComponent, *components.PositionComponent](em) {
		ring, _ := ecs.GetComponent[*components.RingComponent](em, id)
		if !ring.Started || ring.Alpha <= 0 || !fs.sessions.IsCurrent(ring.Session) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Rings = append(snap.Rings, Drawable{
			X: pos.X, Y: pos.Y, Scale: ring.Scale, Alpha: ring.Alpha, Color: ringColor,
		})
	}

	if animID := fs.sequencer.AnimationEntity(); animID != 0 {
		anim, ok := ecs.GetComponent[*components.AnimationComponent](em, animID)
		pos, okPos := ecs.GetComponent[*components.PositionComponent](em, animID)
		if ok && okPos && !anim.IsFinished {
			snap.Detonation = AnimationView{
				X: pos.X, Y: pos.Y, Frame: anim.CurrentFrame, Scale: anim.Scale, Visible: true,
			}
		}
	}

	return snap
}
