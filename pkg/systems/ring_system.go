package systems

import (
	"image/color"
	"log"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
	"github.com/decker502/rocket/pkg/utils"
)

// RingSystem 冲击波环系统
//
// 引爆时一次性创建全部环，第 i 个环等待 i*Interval 秒后出现。
// 出现后每参考帧 Scale += ScaleStep、Alpha -= AlphaStep，Alpha <= 0 时销毁。
type RingSystem struct {
	entityManager *ecs.EntityManager
	config        *config.RocketConfig
	sessions      *SessionTracker
	color         color.RGBA
}

// NewRingSystem 创建冲击波环系统
// 环颜色在此解析一次，无效时回退为白色
func NewRingSystem(em *ecs.EntityManager, cfg *config.RocketConfig, sessions *SessionTracker) *RingSystem {
	ringColor, err := utils.ParseHexColor(cfg.Rings.Color)
	if err != nil {
		log.Printf("[RingSystem] Invalid ring color %q, using white: %v", cfg.Rings.Color, err)
		ringColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return &RingSystem{
		entityManager: em,
		config:        cfg,
		sessions:      sessions,
		color:         ringColor,
	}
}

// Color 返回环的描边颜色
func (rs *RingSystem) Color() color.RGBA {
	return rs.color
}

// SpawnRings 在 (x, y) 创建一组错开出现的冲击波环
func (rs *RingSystem) SpawnRings(session uint64, x, y float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, rs.config.Rings.Count)
	for i := 0; i < rs.config.Rings.Count; i++ {
		id := rs.entityManager.CreateEntity()
		delay := float64(i) * rs.config.Rings.Interval
		ecs.AddComponent(rs.entityManager, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(rs.entityManager, id, &components.RingComponent{
			Session: session,
			Index:   i,
			Delay:   delay,
			Started: delay <= 0,
			Scale:   rs.config.Rings.InitialScale,
			Alpha:   rs.config.Rings.InitialAlpha,
		})
		ids = append(ids, id)
	}
	log.Printf("[RingSystem] Spawned %d rings at (%.1f, %.1f), session %d", len(ids), x, y, session)
	return ids
}

// Update 推进所有冲击波环
func (rs *RingSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	k := dt * rs.config.Flight.ReferenceTickRate

	for _, id := range ecs.GetEntitiesWith1[*components.RingComponent](rs.entityManager) {
		ring, ok := ecs.GetComponent[*components.RingComponent](rs.entityManager, id)
		if !ok || ring.Alpha <= 0 {
			continue
		}

		if !rs.sessions.IsCurrent(ring.Session) {
			ring.Alpha = 0
			rs.entityManager.DestroyEntity(id)
			continue
		}

		// 等待出现；累减 dt 会留下微小的正余量，按 epsilon 判定
		if !ring.Started {
			ring.Delay -= dt
			if ring.Delay <= particleLifeEpsilon {
				ring.Delay = 0
				ring.Started = true
			}
			continue
		}

		ring.Scale += rs.config.Rings.ScaleStep * k
		ring.Alpha -= rs.config.Rings.AlphaStep * k
		if ring.Alpha <= particleLifeEpsilon {
			ring.Alpha = 0
			rs.entityManager.DestroyEntity(id)
		}
	}
}

// ActiveRings 返回尚未消失的环数量（包括等待出现的）
func (rs *RingSystem) ActiveRings() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.RingComponent](rs.entityManager) {
		if ring, ok := ecs.GetComponent[*components.RingComponent](rs.entityManager, id); ok && ring.Alpha > 0 {
			count++
		}
	}
	return count
}
