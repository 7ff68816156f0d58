package systems

import (
	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/ecs"
	"github.com/decker502/rocket/pkg/utils"
)

// testDT 参考帧率下的一帧
const testDT = 1.0 / 60.0

// testSeed 测试使用的固定随机种子
const testSeed = 20240601

// newTestConfig 返回 800x600 视口的默认配置
func newTestConfig(prepare bool) *config.RocketConfig {
	cfg := config.DefaultRocketConfig()
	cfg.Viewport.Width = 800
	cfg.Viewport.Height = 600
	cfg.Flight.PrepareEnabled = prepare
	cfg.Seed = testSeed
	return cfg
}

// newTestScheduler 创建使用固定种子的调度器
func newTestScheduler(prepare bool) *FrameScheduler {
	cfg := newTestConfig(prepare)
	return NewFrameScheduler(cfg, utils.NewPRNG(testSeed))
}

// newTestScene 创建带 SceneComponent 的场景实体
func newTestScene(em *ecs.EntityManager, width, height float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.SceneComponent{Width: width, Height: height})
	return id
}

// runFrames 推进 n 帧
func runFrames(fs *FrameScheduler, n int) {
	for i := 0; i < n; i++ {
		fs.Update(testDT)
	}
}

// runUntil 推进直到条件满足，返回推进的帧数；超过 limit 返回 -1
func runUntil(fs *FrameScheduler, limit int, cond func() bool) int {
	for i := 1; i <= limit; i++ {
		fs.Update(testDT)
		if cond() {
			return i
		}
	}
	return -1
}
