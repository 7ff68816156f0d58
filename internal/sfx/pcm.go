package sfx

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// renderChunk 每次从流中读取的采样数
const renderChunk = 512

// RenderPCM16 把有限长度的流渲染为 16 位小端立体声 PCM
//
// 采样被限制在 [-1, 1]。流必须有终点，否则会一直读取。
func RenderPCM16(s beep.Streamer) []byte {
	buf := make([][2]float64, renderChunk)
	out := make([]byte, 0, renderChunk*4)
	frame := make([]byte, 4)

	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:2], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:4], uint16(toInt16(buf[i][1])))
			out = append(out, frame...)
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// BoomPCM 生成默认爆炸音效的 PCM16 数据
func BoomPCM(sr beep.SampleRate, seed int64) ([]byte, error) {
	s, err := NewBoom(sr, DefaultBoomParams(), seed)
	if err != nil {
		return nil, err
	}
	return RenderPCM16(s), nil
}
