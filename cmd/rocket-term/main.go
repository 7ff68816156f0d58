// Command rocket-term 在终端中运行火箭发射与爆炸效果
//
// 与桌面端共用同一个 FrameScheduler，只是用 tcell 字符绘制快照，
// 并通过 beep/speaker 播放合成的爆炸音效。
//
// Usage:
//
//	go run ./cmd/rocket-term [flags]
//
// Flags:
//
//	--config <path>  Rocket config YAML (default: built-in defaults)
//	--seed <n>       Random seed (0 = config seed or current time)
//	--verbose        Write logs to rocket-term.log
//	--mute           Start without sound
//
// Controls:
//
//	l / space  - Launch
//	e          - Explode
//	r          - Reset
//	m          - Mute
//	q / Esc    - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/rocket/internal/sfx"
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/systems"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

var (
	configFlag  = flag.String("config", "", "Rocket config YAML (default: built-in defaults)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = use config seed or current time)")
	verboseFlag = flag.Bool("verbose", false, "Write logs to rocket-term.log")
	muteFlag    = flag.Bool("mute", false, "Start without sound")
)

type termApp struct {
	screen    tcell.Screen
	scheduler *systems.FrameScheduler
	renderer  *renderer

	audioInit bool
	muted     bool
	boomSeed  int64
}

func newTermApp(cfg *config.RocketConfig) (*termApp, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &termApp{
		screen:    screen,
		scheduler: systems.NewFrameScheduler(cfg, nil),
		renderer:  &renderer{screen: screen, frameCount: cfg.Detonation.FrameCount},
		muted:     *muteFlag,
	}
	a.boomSeed = a.scheduler.RNG().Seed()
	a.resize()

	// 无声卡时照常运行
	if err := speaker.Init(sfx.SampleRate, sfx.SampleRate.N(time.Second/10)); err != nil {
		log.Printf("[RocketTerm] Audio initialization failed: %v", err)
	} else {
		a.audioInit = true
	}
	a.scheduler.OnDetonate(a.playBoom)

	return a, nil
}

func (a *termApp) resize() {
	cols, rows := a.screen.Size()
	a.scheduler.SetViewport(viewportForCells(cols, rows))
}

// playBoom 每次爆炸合成一段新的音效（不同种子，避免听起来完全一样）
func (a *termApp) playBoom(x, y float64) {
	if !a.audioInit || a.muted {
		return
	}
	a.boomSeed++
	boom, err := sfx.NewBoom(sfx.SampleRate, sfx.DefaultBoomParams(), a.boomSeed)
	if err != nil {
		log.Printf("[RocketTerm] Boom synthesis failed: %v", err)
		return
	}
	speaker.Play(boom)
}

// handleEvent 返回 false 表示退出
func (a *termApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'l', 'L', ' ':
			a.scheduler.Launch()
		case 'e', 'E':
			a.scheduler.Explode()
		case 'r', 'R':
			a.scheduler.Reset()
		case 'm', 'M':
			a.muted = !a.muted
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
	return true
}

func (a *termApp) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			a.scheduler.Update(config.ClampFrameDelta(now.Sub(last).Seconds()))
			last = now
			a.renderer.draw(a.scheduler.Snapshot(), a.muted)
			a.screen.Show()
		}
	}
}

func (a *termApp) cleanup() {
	if a.audioInit {
		speaker.Close()
	}
	a.screen.Fini()
}

func loadConfig() (*config.RocketConfig, error) {
	cfg := config.DefaultRocketConfig()
	if *configFlag != "" {
		loaded, err := config.LoadRocketConfig(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	return cfg, nil
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.Create("rocket-term.log")
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	app, err := newTermApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
}
