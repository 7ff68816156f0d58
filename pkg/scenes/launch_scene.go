package scenes

import (
	"log"

	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/game"
	"github.com/decker502/rocket/pkg/systems"
	"github.com/decker502/rocket/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// SceneLaunch 发射台场景名称（SceneManager.Load 使用）
const SceneLaunch = "launch"

// particleRadius 粒子 scale = 1 时的绘制半径（像素）
const particleRadius = 4.0

// ringStrokeWidth 冲击环线宽（像素）
const ringStrokeWidth = 3.0

// LaunchScene 火箭发射场景
//
// 场景本身不含模拟逻辑：按键转换为 Launch/Explode/Reset 命令，
// 每帧推进 FrameScheduler，再根据 Snapshot 绘制。
type LaunchScene struct {
	resourceManager *game.ResourceManager
	audioManager    *game.AudioManager
	scheduler       *systems.FrameScheduler

	rocketImage      *ebiten.Image
	detonationFrames []*ebiten.Image

	stars   []star
	hudFace text.Face
}

// NewLaunchScene 创建发射场景
//
// 参数:
//   - rm: 资源管理器（已加载 resources.yaml，可为 nil，此时全部使用占位图）
//   - am: 音频管理器（可为 nil，此时不播放音效）
//   - cfg: 火箭配置（nil 时使用默认配置）
func NewLaunchScene(rm *game.ResourceManager, am *game.AudioManager, cfg *config.RocketConfig) *LaunchScene {
	if cfg == nil {
		cfg = config.DefaultRocketConfig()
	}

	scene := &LaunchScene{
		resourceManager: rm,
		audioManager:    am,
		scheduler:       systems.NewFrameScheduler(cfg, nil),
		hudFace:         text.NewGoXFace(basicfont.Face7x13),
	}

	// 星空使用独立随机流，不干扰粒子与抖动的随机序列
	scene.stars = newStarField(utils.NewPRNG(scene.scheduler.RNG().Seed()+1), config.StarCount)

	scene.loadResources(cfg)
	scene.scheduler.OnDetonate(scene.onDetonate)

	log.Printf("[LaunchScene] Created (%d detonation frames, %d stars)", len(scene.detonationFrames), len(scene.stars))
	return scene
}

// loadResources 加载火箭与爆炸序列帧，缺失时使用生成的占位图
func (s *LaunchScene) loadResources(cfg *config.RocketConfig) {
	newRocket := func() *ebiten.Image {
		return game.NewPlaceholderRocket(config.ActorWidth, config.ActorHeight)
	}

	if s.resourceManager == nil {
		s.rocketImage = newRocket()
		frame := game.NewPlaceholderFireball(detonationPlaceholderSize)
		s.detonationFrames = make([]*ebiten.Image, cfg.Detonation.FrameCount)
		for i := range s.detonationFrames {
			s.detonationFrames[i] = frame
		}
		return
	}

	s.rocketImage = s.resourceManager.LoadImageOrPlaceholder(ImageRocket, newRocket)
	s.detonationFrames = s.resourceManager.LoadFrameSequence(
		cfg.Detonation.FramePrefix, cfg.Detonation.FrameCount, detonationPlaceholderSize)
}

// Scheduler 返回场景使用的帧调度器
func (s *LaunchScene) Scheduler() *systems.FrameScheduler {
	return s.scheduler
}

// Update 处理输入并推进一帧模拟
func (s *LaunchScene) Update(deltaTime float64) {
	s.handleInput()
	s.scheduler.Update(deltaTime)
}

// handleInput L=发射 E=引爆 R=复位 M=静音
func (s *LaunchScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.scheduler.Launch()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		s.scheduler.Explode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.scheduler.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && s.audioManager != nil {
		s.audioManager.SetMuted(!s.audioManager.IsMuted())
	}
}

// Resize 宿主窗口尺寸变化时更新视口
func (s *LaunchScene) Resize(width, height int) {
	s.scheduler.SetViewport(float64(width), float64(height))
}
