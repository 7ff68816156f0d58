package systems

import (
	"image/color"
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
	"github.com/decker502/rocket/pkg/utils"
)

// particleLifeEpsilon absorbs floating-point drift so that 1/decay steps
// always exhaust a particle (50 * 0.02 does not sum to exactly 1.0).
const particleLifeEpsilon = 1e-9

// ParticleSystem simulates detonation particle bursts.
//
// Each burst is an entity holding a BurstComponent with the IDs of its live
// particles. Particles are entities with PositionComponent + ParticleComponent.
// A burst destroys itself once its last particle dies and is never ticked again.
//
// All per-tick constants are in reference ticks and are scaled by
// dt * ReferenceTickRate.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	config   *config.RocketConfig
	sessions *SessionTracker
	rng      *utils.PRNG
	palette  []color.RGBA
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager, cfg *config.RocketConfig, sessions *SessionTracker, rng *utils.PRNG) *ParticleSystem {
	palette := cfg.Particles.Colors()
	if len(palette) == 0 {
		palette = []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	return &ParticleSystem{
		EntityManager: em,
		config:        cfg,
		sessions:      sessions,
		rng:           rng,
		palette:       palette,
	}
}

// SpawnBurst spawns a burst of the configured particle count at (x, y).
func (ps *ParticleSystem) SpawnBurst(session uint64, x, y float64) ecs.EntityID {
	return ps.SpawnBurstN(session, x, y, ps.config.Particles.Count)
}

// SpawnBurstN spawns count particles at (x, y) owned by the given session.
// Velocity components are uniform in ±SpeedRange, color uniform over the palette.
func (ps *ParticleSystem) SpawnBurstN(session uint64, x, y float64, count int) ecs.EntityID {
	burstID := ps.EntityManager.CreateEntity()
	burst := &components.BurstComponent{
		Session:   session,
		Particles: make([]ecs.EntityID, 0, count),
	}

	speed := ps.config.Particles.SpeedRange
	for i := 0; i < count; i++ {
		id := ps.EntityManager.CreateEntity()
		ecs.AddComponent(ps.EntityManager, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(ps.EntityManager, id, &components.ParticleComponent{
			VelocityX: ps.rng.Symmetric(speed),
			VelocityY: ps.rng.Symmetric(speed),
			Gravity:   ps.config.Particles.Gravity,
			Life:      1.0,
			LifeDecay: ps.config.Particles.LifeDecay,
			Color:     ps.palette[ps.rng.Intn(len(ps.palette))],
			Scale:     1.0,
			Alpha:     1.0,
			Burst:     burstID,
		})
		burst.Particles = append(burst.Particles, id)
	}
	burst.Spawned = len(burst.Particles)

	ecs.AddComponent(ps.EntityManager, burstID, burst)
	log.Printf("[ParticleSystem] Spawned burst %d: %d particles at (%.1f, %.1f), session %d",
		burstID, burst.Spawned, x, y, session)

	return burstID
}

// Update advances every live burst by one tick.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	k := dt * ps.config.Flight.ReferenceTickRate

	for _, burstID := range ecs.GetEntitiesWith1[*components.BurstComponent](ps.EntityManager) {
		burst, ok := ecs.GetComponent[*components.BurstComponent](ps.EntityManager, burstID)
		if !ok || burst.Done {
			continue
		}

		if !ps.sessions.IsCurrent(burst.Session) {
			log.Printf("[ParticleSystem] Burst %d belongs to stale session %d, tearing down %d particles",
				burstID, burst.Session, len(burst.Particles))
			ps.terminate(burstID, burst)
			continue
		}

		alive := burst.Particles[:0]
		for _, id := range burst.Particles {
			if ps.stepParticle(id, k) {
				alive = append(alive, id)
			} else {
				ps.EntityManager.DestroyEntity(id)
			}
		}
		burst.Particles = alive
		burst.TicksRun++

		if len(burst.Particles) == 0 {
			log.Printf("[ParticleSystem] Burst %d exhausted after %d ticks", burstID, burst.TicksRun)
			ps.terminate(burstID, burst)
		}
	}
}

// stepParticle integrates one particle. Returns false when it has died.
func (ps *ParticleSystem) stepParticle(id ecs.EntityID, k float64) bool {
	pos, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, id)
	if !ok {
		return false
	}
	p, ok := ecs.GetComponent[*components.ParticleComponent](ps.EntityManager, id)
	if !ok {
		return false
	}

	pos.X += p.VelocityX * k
	pos.Y += p.VelocityY * k
	p.VelocityY += p.Gravity * k

	p.Life -= p.LifeDecay * k
	if p.Life <= particleLifeEpsilon {
		p.Life = 0
	}
	p.Alpha = p.Life
	p.Scale = p.Life

	return p.Life > 0
}

// terminate destroys the remaining particles and the burst entity itself.
func (ps *ParticleSystem) terminate(burstID ecs.EntityID, burst *components.BurstComponent) {
	for _, id := range burst.Particles {
		ps.EntityManager.DestroyEntity(id)
	}
	burst.Particles = nil
	burst.Done = true
	ps.EntityManager.DestroyEntity(burstID)
}

// ActiveBursts returns the number of bursts still requesting ticks.
func (ps *ParticleSystem) ActiveBursts() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](ps.EntityManager) {
		if burst, ok := ecs.GetComponent[*components.BurstComponent](ps.EntityManager, id); ok && !burst.Done {
			count++
		}
	}
	return count
}

// LiveParticles returns the number of live particles across all bursts.
func (ps *ParticleSystem) LiveParticles() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.BurstComponent](ps.EntityManager) {
		if burst, ok := ecs.GetComponent[*components.BurstComponent](ps.EntityManager, id); ok && !burst.Done {
			count += len(burst.Particles)
		}
	}
	return count
}
