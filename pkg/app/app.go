// Package app 提供火箭场景应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置与资源、创建音频上下文、
// 注册场景，并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/rocket/internal/sfx"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/embedded"
	"github.com/decker502/rocket/pkg/game"
	"github.com/decker502/rocket/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// EmbeddedRocketConfig 内置火箭配置路径
	EmbeddedRocketConfig = "data/rocket.yaml"
	// EmbeddedResourceConfig 内置资源清单路径
	EmbeddedResourceConfig = "data/resources.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的火箭配置文件，为空则使用内置的 data/rocket.yaml
	ConfigPath string
	// Seed 随机种子，非 0 时覆盖配置文件中的 seed
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	rocketConfig *config.RocketConfig
	verbose      bool

	lastUpdate time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	rocketConfig, err := LoadRocketConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		rocketConfig.Seed = cfg.Seed
	}

	// 资源清单缺失时场景全部使用占位图，不视为致命错误
	resourceManager := game.NewResourceManager(embedded.FS())
	if err := resourceManager.LoadResourceConfig(EmbeddedResourceConfig); err != nil {
		log.Printf("[App] 资源清单加载失败，使用占位图: %v", err)
	}

	// 初始化音频上下文（采样率与合成音效一致）
	audioContext := audio.NewContext(int(sfx.SampleRate))
	audioManager := game.NewAudioManager(audioContext)
	if err := scenes.RegisterSounds(audioManager, rocketConfig.Seed); err != nil {
		log.Printf("[App] 音效合成失败: %v", err)
	}
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(resourceManager, audioManager, rocketConfig))
	if !sceneManager.Load(scenes.SceneLaunch) {
		return nil, fmt.Errorf("无法创建场景: %s", scenes.SceneLaunch)
	}

	return &App{
		sceneManager: sceneManager,
		rocketConfig: rocketConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadRocketConfig 按优先级加载火箭配置：指定文件 > 内置文件 > 默认值
func LoadRocketConfig(path string) (*config.RocketConfig, error) {
	if path != "" {
		cfg, err := config.LoadRocketConfig(path)
		if err != nil {
			return nil, fmt.Errorf("火箭配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载火箭配置: %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(EmbeddedRocketConfig)
	if err != nil {
		log.Printf("[Config] 内置配置不可用，使用默认值: %v", err)
		return config.DefaultRocketConfig(), nil
	}
	cfg, err := config.ParseRocketConfig(data)
	if err != nil {
		return nil, fmt.Errorf("内置火箭配置无效: %w", err)
	}
	log.Printf("[Config] 加载火箭配置: %s (embedded)", EmbeddedRocketConfig)
	return cfg, nil
}

// RocketConfig 返回生效的火箭配置
func (a *App) RocketConfig() *config.RocketConfig {
	return a.rocketConfig
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(a.frameDelta(time.Now()))
	return nil
}

// frameDelta 根据墙钟计算本帧时间步长
// 第一帧使用标称 tick 间隔；长帧截断到 MaxDeltaTime
func (a *App) frameDelta(now time.Time) float64 {
	dt := 1.0 / float64(ebiten.TPS())
	if !a.lastUpdate.IsZero() {
		dt = now.Sub(a.lastUpdate).Seconds()
	}
	a.lastUpdate = now
	return config.ClampFrameDelta(dt)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时的 letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口，变化时通知当前场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
