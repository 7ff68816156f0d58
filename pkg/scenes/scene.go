package scenes

import (
	"github.com/decker502/rocket/pkg/config"
	"github.com/decker502/rocket/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// NewSceneFactory 返回按名称创建场景的工厂函数（供 SceneManager.Load 使用）
// 未知名称返回 nil
func NewSceneFactory(rm *game.ResourceManager, am *game.AudioManager, cfg *config.RocketConfig) game.SceneFactory {
	return func(name string) game.Scene {
		switch name {
		case SceneLaunch:
			return NewLaunchScene(rm, am, cfg)
		default:
			return nil
		}
	}
}
