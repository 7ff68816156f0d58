package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 保存预先合成好的 PCM 音效（16 位小端立体声）
//   - 通过音效 ID 播放，统一应用音量和静音设置
//
// 音效在启动时注册一次，每次播放都从头开始（重复触发会打断上一次播放）。
type AudioManager struct {
	context      *audio.Context
	soundPlayers map[string]*audio.Player // 音效播放器缓存（音效ID -> 播放器）
	volume       float64
	muted        bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 全局 audio.Context（可为 nil，此时所有播放请求被忽略）
func NewAudioManager(ctx *audio.Context) *AudioManager {
	return &AudioManager{
		context:      ctx,
		soundPlayers: make(map[string]*audio.Player),
		volume:       1.0,
	}
}

// RegisterPCM 注册一段 PCM 音效
//
// 参数：
//   - soundID: 音效ID（如 "SOUND_DETONATION"）
//   - pcm: 16 位小端立体声数据，采样率与 audio.Context 一致
func (am *AudioManager) RegisterPCM(soundID string, pcm []byte) {
	if am.context == nil || len(pcm) == 0 {
		return
	}
	am.soundPlayers[soundID] = am.context.NewPlayerFromBytes(pcm)
	log.Printf("[AudioManager] 注册音效 %s (%d 字节)", soundID, len(pcm))
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.muted {
		return false
	}
	player, ok := am.soundPlayers[soundID]
	if !ok {
		log.Printf("[AudioManager] 未注册的音效: %s", soundID)
		return false
	}

	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] 重置音效 %s 失败: %v", soundID, err)
		return false
	}
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// SetVolume 设置音量（0.0 - 1.0）
func (am *AudioManager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	am.volume = volume
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if !muted {
		return
	}
	for _, player := range am.soundPlayers {
		player.Pause()
	}
}

// IsMuted 是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}
