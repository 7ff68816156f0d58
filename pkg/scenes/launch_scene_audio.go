package scenes

import (
	"log"

	"github.com/decker502/rocket/internal/sfx"
	"github.com/decker502/rocket/pkg/game"
)

// SoundDetonation 爆炸音效 ID
const SoundDetonation = "SOUND_DETONATION"

// RegisterSounds 合成场景需要的音效并注册到音频管理器
//
// 爆炸音效由 sfx 包实时合成（噪声 + 低频轰鸣 + 指数衰减），不依赖音频文件。
// 采样率必须与 audio.Context 一致（sfx.SampleRate）。
func RegisterSounds(am *game.AudioManager, seed int64) error {
	if am == nil {
		return nil
	}
	pcm, err := sfx.BoomPCM(sfx.SampleRate, seed)
	if err != nil {
		return err
	}
	am.RegisterPCM(SoundDetonation, pcm)
	log.Printf("[LaunchScene] Registered %s (%d bytes)", SoundDetonation, len(pcm))
	return nil
}

// onDetonate 爆炸钩子：播放爆炸音效
func (s *LaunchScene) onDetonate(x, y float64) {
	if s.audioManager == nil {
		return
	}
	s.audioManager.PlaySound(SoundDetonation)
}
