// Package sfx 合成爆炸音效
//
// 音效完全由振荡器和噪声生成，不依赖音频文件。
// 桌面端把结果渲染为 PCM16 交给 ebiten audio 播放，终端端直接交给 beep speaker。
package sfx

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate 默认采样率（与 ebiten audio.Context 一致）
const SampleRate = beep.SampleRate(48000)

// BoomParams 爆炸音效参数
type BoomParams struct {
	Duration time.Duration // 总时长
	RumbleHz float64       // 低频轰鸣频率
	NoiseMix float64       // 噪声占比 0-1，其余为轰鸣
	Decay    float64       // 指数衰减系数（1/秒）
	Volume   float64       // 线性增益 0-1
}

// DefaultBoomParams 返回默认爆炸音效参数
func DefaultBoomParams() BoomParams {
	return BoomParams{
		Duration: 900 * time.Millisecond,
		RumbleHz: 55,
		NoiseMix: 0.6,
		Decay:    6,
		Volume:   0.8,
	}
}

// Validate 验证参数
func (p BoomParams) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("boom duration must be positive, got %s", p.Duration)
	}
	if p.RumbleHz <= 0 {
		return fmt.Errorf("boom rumble frequency must be positive, got %.1f", p.RumbleHz)
	}
	if p.NoiseMix < 0 || p.NoiseMix > 1 {
		return fmt.Errorf("boom noise mix must be in [0, 1], got %.2f", p.NoiseMix)
	}
	if p.Decay < 0 {
		return fmt.Errorf("boom decay must not be negative, got %.2f", p.Decay)
	}
	return nil
}

// NewBoom 生成爆炸音效流：白噪声 + 低频正弦，叠加指数衰减包络
//
// 相同 seed 生成完全相同的采样。
func NewBoom(sr beep.SampleRate, p BoomParams, seed int64) (beep.Streamer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rumble, err := generators.SineTone(sr, p.RumbleHz)
	if err != nil {
		return nil, fmt.Errorf("failed to create rumble tone: %w", err)
	}
	noise := &noise{rng: rand.New(rand.NewSource(seed))}

	mixed := beep.Mix(
		newVolume(noise, p.NoiseMix),
		newVolume(rumble, 1-p.NoiseMix),
	)

	shaped := &decayEnvelope{
		streamer: beep.Take(sr.N(p.Duration), mixed),
		rate:     sr,
		decay:    p.Decay,
	}
	return newVolume(shaped, p.Volume), nil
}

// noise 均匀白噪声
type noise struct {
	rng *rand.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// decayEnvelope 指数衰减包络 e^(-decay*t)
type decayEnvelope struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	decay    float64
	position int
}

func (e *decayEnvelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.position) / float64(e.rate)
		gain := math.Exp(-e.decay * t)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.streamer.Err() }

// newVolume 线性增益转换为 effects.Volume（以 2 为底）
// math.Log2(0) 是 -Inf，0 增益直接静音
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain), Silent: false}
}
