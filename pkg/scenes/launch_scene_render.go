package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/systems"
	"github.com/decker502/rocket/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageRocket 火箭图片资源 ID
const ImageRocket = "IMAGE_ROCKET"

// detonationPlaceholderSize 爆炸帧缺失时生成的占位图边长
const detonationPlaceholderSize = 96

var (
	skyColor = color.RGBA{R: 8, G: 10, B: 28, A: 255}
	hudColor = color.RGBA{R: 220, G: 230, B: 255, A: 255}
)

// star 背景星星，坐标为视口比例（0..1），视口变化时自动铺满
type star struct {
	X, Y       float64
	Radius     float64
	Brightness float64
}

// newStarField 用给定随机源生成 n 颗星星
func newStarField(rng *utils.PRNG, n int) []star {
	if n <= 0 {
		return nil
	}
	stars := make([]star, n)
	for i := range stars {
		stars[i] = star{
			X:          rng.Float64(),
			Y:          rng.Float64(),
			Radius:     rng.Range(0.5, 1.8),
			Brightness: rng.Range(0.3, 1.0),
		}
	}
	return stars
}

// fade 按透明度缩放颜色（color.RGBA 为预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// Draw 根据当前帧快照绘制场景
//
// 绘制顺序: 天空 -> 星空 -> 火箭 -> 冲击环 -> 爆炸动画 -> 粒子 -> HUD
// 除 HUD 外所有元素都叠加镜头抖动偏移。
func (s *LaunchScene) Draw(screen *ebiten.Image) {
	snap := s.scheduler.Snapshot()
	screen.Fill(skyColor)

	s.drawStars(screen, snap)
	s.drawActor(screen, snap)
	s.drawRings(screen, snap)
	s.drawDetonation(screen, snap)
	s.drawParticles(screen, snap)
	s.drawHUD(screen, snap)
}

func (s *LaunchScene) drawStars(screen *ebiten.Image, snap systems.FrameSnapshot) {
	for _, st := range s.stars {
		x := st.X*snap.ViewportWidth + snap.OffsetX
		y := st.Y*snap.ViewportHeight + snap.OffsetY
		clr := fade(color.RGBA{R: 255, G: 255, B: 255, A: 255}, st.Brightness)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(st.Radius), clr, true)
	}
}

func (s *LaunchScene) drawActor(screen *ebiten.Image, snap systems.FrameSnapshot) {
	actor := snap.Actor
	if !actor.Visible || actor.Alpha <= 0 || s.rocketImage == nil {
		return
	}

	bounds := s.rocketImage.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(actor.Scale, actor.Scale)
	op.GeoM.Rotate(actor.Rotation)
	op.GeoM.Translate(actor.X+snap.OffsetX, actor.Y+snap.OffsetY)
	op.ColorScale.ScaleAlpha(float32(actor.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.rocketImage, op)
}

func (s *LaunchScene) drawRings(screen *ebiten.Image, snap systems.FrameSnapshot) {
	for _, r := range snap.Rings {
		radius := snap.RingRadius * r.Scale
		if radius <= 0 {
			continue
		}
		vector.StrokeCircle(screen,
			float32(r.X+snap.OffsetX), float32(r.Y+snap.OffsetY),
			float32(radius), ringStrokeWidth, fade(r.Color, r.Alpha), true)
	}
}

func (s *LaunchScene) drawDetonation(screen *ebiten.Image, snap systems.FrameSnapshot) {
	det := snap.Detonation
	if !det.Visible || len(s.detonationFrames) == 0 {
		return
	}

	frame := det.Frame
	if frame < 0 || frame >= len(s.detonationFrames) {
		frame = 0
	}
	img := s.detonationFrames[frame]
	if img == nil {
		return
	}

	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(det.Scale, det.Scale)
	op.GeoM.Translate(det.X+snap.OffsetX, det.Y+snap.OffsetY)
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(img, op)
}

func (s *LaunchScene) drawParticles(screen *ebiten.Image, snap systems.FrameSnapshot) {
	for _, p := range snap.Particles {
		radius := particleRadius * p.Scale
		if radius <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen,
			float32(p.X+snap.OffsetX), float32(p.Y+snap.OffsetY),
			float32(radius), fade(p.Color, p.Alpha), true)
	}
}

func (s *LaunchScene) drawHUD(screen *ebiten.Image, snap systems.FrameSnapshot) {
	lines := hudLines(snap)
	if s.audioManager != nil && s.audioManager.IsMuted() {
		lines = append(lines, "Sound: muted")
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(config.HUDMarginX, config.HUDMarginY+float64(i)*config.HUDLineHeight)
		op.ColorScale.ScaleWithColor(hudColor)
		text.Draw(screen, line, s.hudFace, op)
	}
}

// hudLines HUD 文本内容
func hudLines(snap systems.FrameSnapshot) []string {
	return []string{
		fmt.Sprintf("Phase: %s", snap.Phase.Label()),
		fmt.Sprintf("Height: %.0f", snap.Altitude),
		"[L] Launch  [E] Explode  [R] Reset  [M] Mute",
	}
}
