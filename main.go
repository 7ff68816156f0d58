// Command rocket 火箭发射与爆炸效果演示（桌面端）
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose        Enable verbose logging
//	--config <path>  Load rocket parameters from a YAML file instead of the embedded data/rocket.yaml
//	--seed <n>       Random seed for particles, shake and stars (0 = config / time based)
//
// Controls:
//
//	L / Space  - Launch
//	E          - Explode
//	R          - Reset
//	M          - Mute
//	F11        - Toggle fullscreen
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/rocket/pkg/app"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Rocket config YAML (default: embedded data/rocket.yaml)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = use config seed or current time)")
)

func main() {
	flag.Parse()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	rocketApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		// 非 verbose 模式下 NewApp 已关闭日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Rocket")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(rocketApp); err != nil {
		log.Fatal(err)
	}
}
