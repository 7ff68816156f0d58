package systems

import "log"

// SessionTracker 爆炸会话令牌
//
// 每次引爆开始一个新会话，所有效果单元（粒子批次、冲击环、镜头抖动、
// 爆炸动画、复位计时器）都记录创建时的会话号。
// Reset 或新的引爆使旧会话失效，效果单元在下一次推进前检查令牌，
// 过期的单元会被拆除而不是继续运行。
type SessionTracker struct {
	current uint64
}

// NewSessionTracker 创建会话令牌管理器（初始无有效会话）
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{}
}

// Begin 开始一个新会话并返回其令牌，之前的会话随之失效
func (st *SessionTracker) Begin() uint64 {
	st.current++
	log.Printf("[SessionTracker] Begin session %d", st.current)
	return st.current
}

// Invalidate 使当前会话失效，不开始新会话
func (st *SessionTracker) Invalidate() {
	if st.current == 0 {
		return
	}
	log.Printf("[SessionTracker] Invalidate session %d", st.current)
	st.current++
}

// IsCurrent 检查令牌是否属于当前有效会话
func (st *SessionTracker) IsCurrent(session uint64) bool {
	return session != 0 && session == st.current
}
