package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/rocket/pkg/components"
	"github.com/decker502/rocket/pkg/systems"
	"github.com/decker502/rocket/pkg/utils"
)

// 终端单元格对应的世界坐标尺寸（像素）
// 字符单元大致是 1:2 的竖长方形
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// detonationRadius 爆炸动画 scale = 1 时的半径（像素）
const detonationRadius = 48.0

var (
	styleSky    = tcell.StyleDefault.Background(tcell.NewRGBColor(8, 10, 28))
	styleHUD    = styleSky.Foreground(tcell.NewRGBColor(220, 230, 255))
	styleRocket = styleSky.Foreground(tcell.ColorWhite).Bold(true)
	styleFlame  = styleSky.Foreground(tcell.NewRGBColor(255, 140, 0))
)

// viewportForCells 终端尺寸对应的世界视口
func viewportForCells(cols, rows int) (float64, float64) {
	return float64(cols) * cellWidth, float64(rows) * cellHeight
}

// toCell 世界坐标转换为终端单元格
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

// tint 按透明度压暗颜色（终端没有 alpha，用亮度近似）
func tint(c color.RGBA, alpha float64) tcell.Color {
	alpha = utils.Clamp01(alpha)
	return tcell.NewRGBColor(
		int32(float64(c.R)*alpha),
		int32(float64(c.G)*alpha),
		int32(float64(c.B)*alpha),
	)
}

// renderer 把帧快照绘制到 tcell 屏幕
type renderer struct {
	screen     tcell.Screen
	frameCount int // 爆炸动画帧数，用于估算火球大小
}

func (r *renderer) put(x, y float64, ch rune, style tcell.Style) {
	col, row := toCell(x, y)
	cols, rows := r.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	r.screen.SetContent(col, row, ch, nil, style)
}

func (r *renderer) text(col, row int, s string, style tcell.Style) {
	for i, ch := range s {
		r.screen.SetContent(col+i, row, ch, nil, style)
	}
}

// draw 绘制顺序与桌面端一致：火箭 -> 冲击环 -> 爆炸 -> 粒子 -> HUD
func (r *renderer) draw(snap systems.FrameSnapshot, muted bool) {
	r.screen.SetStyle(styleSky)
	r.screen.Clear()

	ox, oy := snap.OffsetX, snap.OffsetY

	if a := snap.Actor; a.Visible {
		r.put(a.X+ox, a.Y+oy-cellHeight, '^', styleRocket)
		r.put(a.X+ox, a.Y+oy, '#', styleRocket)
		if snap.Phase == components.PhaseShooting || snap.Phase == components.PhaseFlying {
			r.put(a.X+ox, a.Y+oy+cellHeight, '*', styleFlame)
		}
	}

	for _, ring := range snap.Rings {
		r.drawRing(ring, snap.RingRadius*ring.Scale, ox, oy)
	}

	if det := snap.Detonation; det.Visible {
		r.drawFireball(det, ox, oy)
	}

	for _, p := range snap.Particles {
		r.put(p.X+ox, p.Y+oy, '*', styleSky.Foreground(tint(p.Color, p.Alpha)))
	}

	r.text(0, 0, fmt.Sprintf("Phase: %-18s Height: %.0f", snap.Phase.Label(), snap.Altitude), styleHUD)
	help := "[l] launch  [e] explode  [r] reset  [m] mute  [q] quit"
	if muted {
		help += "  (muted)"
	}
	r.text(0, 1, help, styleHUD)
}

// drawRing 沿圆周采样，步长约为一个单元格
func (r *renderer) drawRing(ring systems.Drawable, radius, ox, oy float64) {
	if radius <= 0 {
		return
	}
	style := styleSky.Foreground(tint(ring.Color, ring.Alpha))
	steps := int(math.Max(12, 2*math.Pi*radius/cellWidth))
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		r.put(ring.X+ox+radius*math.Cos(angle), ring.Y+oy+radius*math.Sin(angle), 'o', style)
	}
}

// drawFireball 用实心圆近似当前爆炸帧：先快速膨胀，随后逐渐变暗
func (r *renderer) drawFireball(det systems.AnimationView, ox, oy float64) {
	progress := 0.0
	if r.frameCount > 1 {
		progress = utils.Clamp01(float64(det.Frame) / float64(r.frameCount-1))
	}
	radius := det.Scale * detonationRadius * utils.Lerp(0.4, 1, utils.EaseOutCubic(progress))
	brightness := 1 - 0.7*utils.EaseInQuad(progress)
	style := styleSky.Foreground(tint(color.RGBA{R: 255, G: 160, B: 40, A: 255}, brightness))

	for y := det.Y - radius; y <= det.Y+radius; y += cellHeight {
		for x := det.X - radius; x <= det.X+radius; x += cellWidth {
			dx, dy := x-det.X, y-det.Y
			if dx*dx+dy*dy <= radius*radius {
				r.put(x+ox, y+oy, '%', style)
			}
		}
	}
}
