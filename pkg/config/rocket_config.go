package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/rocket/pkg/utils"
)

// RocketConfig 火箭发射与爆炸效果的全部可调参数
//
// 配置文件位置: data/rocket.yaml
//
// 所有"每 tick"参数都以参考帧率（ReferenceTickRate，默认 60Hz）下的一帧为单位，
// 运行时按实际 dt 缩放：step * dt * ReferenceTickRate。
// 这样 60Hz 下一帧的行为与原始的逐帧常量完全一致，其他帧率下速度保持不变。
type RocketConfig struct {
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`

	Viewport   ViewportConfig   `yaml:"viewport"`
	Flight     FlightConfig     `yaml:"flight"`
	Motion     MotionConfig     `yaml:"motion"`
	Particles  ParticleConfig   `yaml:"particles"`
	Rings      RingConfig       `yaml:"rings"`
	Shake      ShakeConfig      `yaml:"shake"`
	Detonation DetonationConfig `yaml:"detonation"`
}

// ViewportConfig 初始视口尺寸（像素），运行时可通过 SetViewport 改变
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlightConfig 飞行阶段边界
type FlightConfig struct {
	// ReferenceTickRate 参考帧率（Hz）
	ReferenceTickRate float64 `yaml:"referenceTickRate"`

	// LaunchOffsetY 发射姿态距视口底部的距离：launchY = H - LaunchOffsetY
	LaunchOffsetY float64 `yaml:"launchOffsetY"`

	// PrepareEnabled 是否启用点火下沉阶段（Preparing）
	PrepareEnabled bool `yaml:"prepareEnabled"`

	// PrepareFloorOffset 下沉阶段的底部边界：bottomY = H - PrepareFloorOffset
	PrepareFloorOffset float64 `yaml:"prepareFloorOffset"`

	// TopMargin 自动引爆阈值：y <= TopMargin
	TopMargin float64 `yaml:"topMargin"`

	// ActorScale 火箭的默认缩放
	ActorScale float64 `yaml:"actorScale"`
}

// PhaseMotion 单个阶段的运动规律
type PhaseMotion struct {
	// StepY 每参考帧的竖直位移（正值向下）
	StepY float64 `yaml:"stepY"`

	// SwayAmplitude 每参考帧的水平摆动幅度（像素）
	SwayAmplitude float64 `yaml:"swayAmplitude"`
	// SwayFrequency 水平摆动角频率（弧度/秒）
	SwayFrequency float64 `yaml:"swayFrequency"`

	// WobbleAmplitude 旋转摆动幅度（弧度）
	WobbleAmplitude float64 `yaml:"wobbleAmplitude"`
	// WobbleFrequency 旋转摆动角频率（弧度/秒）
	WobbleFrequency float64 `yaml:"wobbleFrequency"`
}

// MotionConfig 各阶段的运动规律
type MotionConfig struct {
	Preparing PhaseMotion `yaml:"preparing"`
	Shooting  PhaseMotion `yaml:"shooting"`
	Flying    PhaseMotion `yaml:"flying"`
}

// ParticleConfig 爆炸粒子参数
type ParticleConfig struct {
	Count      int      `yaml:"count"`
	SpeedRange float64  `yaml:"speedRange"` // 速度分量范围 ±SpeedRange（每参考帧）
	Gravity    float64  `yaml:"gravity"`    // 每参考帧² 的竖直加速度
	LifeDecay  float64  `yaml:"lifeDecay"`  // 每参考帧的生命衰减
	Palette    []string `yaml:"palette"`    // "#RRGGBB"
}

// Colors 返回解析后的调色板
// 无法解析的颜色会被跳过（Validate 保证正常配置中不存在这种情况）
func (c ParticleConfig) Colors() []color.RGBA {
	colors := make([]color.RGBA, 0, len(c.Palette))
	for _, s := range c.Palette {
		if rgba, err := utils.ParseHexColor(s); err == nil {
			colors = append(colors, rgba)
		}
	}
	return colors
}

// RingConfig 冲击波环参数
type RingConfig struct {
	Count        int     `yaml:"count"`
	Interval     float64 `yaml:"interval"` // 相邻两个环的生成间隔（秒）
	InitialScale float64 `yaml:"initialScale"`
	ScaleStep    float64 `yaml:"scaleStep"` // 每参考帧的缩放增量
	InitialAlpha float64 `yaml:"initialAlpha"`
	AlphaStep    float64 `yaml:"alphaStep"` // 每参考帧的透明度衰减
	Radius       float64 `yaml:"radius"`    // scale = 1 时的半径（像素）
	Color        string  `yaml:"color"`
}

// ShakeConfig 镜头抖动参数
type ShakeConfig struct {
	Intensity float64 `yaml:"intensity"` // 初始振幅（像素）
	Duration  float64 `yaml:"duration"`  // 持续时间（秒）
}

// DetonationConfig 爆炸序列帧动画及复位延迟
type DetonationConfig struct {
	FramePrefix string  `yaml:"framePrefix"` // 资源 ID 前缀，如 "IMAGE_EXPLOSION" -> IMAGE_EXPLOSION_0..N-1
	FrameCount  int     `yaml:"frameCount"`
	FrameRate   float64 `yaml:"frameRate"`  // 帧/秒
	Scale       float64 `yaml:"scale"`      // 放大倍数
	ResetDelay  float64 `yaml:"resetDelay"` // 动画结束后到复位的延迟（秒）
}

// DefaultRocketConfig 返回默认配置
func DefaultRocketConfig() *RocketConfig {
	return &RocketConfig{
		Seed: 0,
		Viewport: ViewportConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
		},
		Flight: FlightConfig{
			ReferenceTickRate:  60,
			LaunchOffsetY:      120,
			PrepareEnabled:     true,
			PrepareFloorOffset: 100,
			TopMargin:          50,
			ActorScale:         1.0,
		},
		Motion: MotionConfig{
			Preparing: PhaseMotion{
				StepY:           2,
				WobbleAmplitude: 0.03,
				WobbleFrequency: 10,
			},
			Shooting: PhaseMotion{
				StepY:           -8,
				SwayAmplitude:   0.6,
				SwayFrequency:   20,
				WobbleAmplitude: 0.05,
				WobbleFrequency: 20,
			},
			Flying: PhaseMotion{
				StepY:           -4,
				SwayAmplitude:   1.5,
				SwayFrequency:   6,
				WobbleAmplitude: 0.12,
				WobbleFrequency: 6,
			},
		},
		Particles: ParticleConfig{
			Count:      50,
			SpeedRange: 10,
			Gravity:    0.3,
			LifeDecay:  0.02,
			Palette:    []string{"#ff4500", "#ffa500", "#ffd700", "#ff6347", "#ffffff"},
		},
		Rings: RingConfig{
			Count:        5,
			Interval:     0.1,
			InitialScale: 0.2,
			ScaleStep:    0.08,
			InitialAlpha: 1.0,
			AlphaStep:    0.03,
			Radius:       40,
			Color:        "#ffcc66",
		},
		Shake: ShakeConfig{
			Intensity: 10,
			Duration:  0.5,
		},
		Detonation: DetonationConfig{
			FramePrefix: "IMAGE_EXPLOSION",
			FrameCount:  16,
			FrameRate:   24,
			Scale:       2.5,
			ResetDelay:  1.0,
		},
	}
}

// LoadRocketConfig 加载火箭配置
//
// 参数:
//   - path: 配置文件路径（如 "data/rocket.yaml"）
//
// 返回:
//   - *RocketConfig: 默认值被文件中出现的字段覆盖后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadRocketConfig(path string) (*RocketConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rocket config: %w", err)
	}
	return ParseRocketConfig(data)
}

// ParseRocketConfig 从 YAML 字节解析配置（嵌入资源使用此入口）
func ParseRocketConfig(data []byte) (*RocketConfig, error) {
	cfg := DefaultRocketConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rocket config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rocket config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *RocketConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %.0fx%.0f", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Flight.ReferenceTickRate <= 0 {
		return fmt.Errorf("flight.referenceTickRate must be positive, got %.2f", c.Flight.ReferenceTickRate)
	}
	if c.Flight.LaunchOffsetY <= 0 || c.Flight.LaunchOffsetY >= c.Viewport.Height/2 {
		return fmt.Errorf("flight.launchOffsetY(%.1f) must be in (0, height/2)", c.Flight.LaunchOffsetY)
	}
	if c.Flight.PrepareEnabled {
		if c.Flight.PrepareFloorOffset <= 0 || c.Flight.PrepareFloorOffset >= c.Flight.LaunchOffsetY {
			return fmt.Errorf("flight.prepareFloorOffset(%.1f) must be in (0, launchOffsetY)", c.Flight.PrepareFloorOffset)
		}
		if c.Motion.Preparing.StepY <= 0 {
			return fmt.Errorf("motion.preparing.stepY must descend (> 0), got %.2f", c.Motion.Preparing.StepY)
		}
	}
	if c.Flight.TopMargin < 0 || c.Flight.TopMargin >= c.Viewport.Height/2 {
		return fmt.Errorf("flight.topMargin(%.1f) must be in [0, height/2)", c.Flight.TopMargin)
	}
	if c.Motion.Shooting.StepY >= 0 || c.Motion.Flying.StepY >= 0 {
		return fmt.Errorf("motion.shooting/flying stepY must ascend (< 0), got %.2f / %.2f",
			c.Motion.Shooting.StepY, c.Motion.Flying.StepY)
	}

	if c.Particles.Count <= 0 {
		return fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count)
	}
	if c.Particles.LifeDecay <= 0 {
		return fmt.Errorf("particles.lifeDecay must be positive, got %.3f", c.Particles.LifeDecay)
	}
	if len(c.Particles.Palette) == 0 {
		return fmt.Errorf("particles.palette must not be empty")
	}
	for _, s := range c.Particles.Palette {
		if _, err := utils.ParseHexColor(s); err != nil {
			return fmt.Errorf("particles.palette: %w", err)
		}
	}

	if c.Rings.Count < 0 || c.Rings.Interval < 0 {
		return fmt.Errorf("rings.count and rings.interval must not be negative")
	}
	if c.Rings.Count > 0 && c.Rings.AlphaStep <= 0 {
		return fmt.Errorf("rings.alphaStep must be positive, got %.3f", c.Rings.AlphaStep)
	}
	if _, err := utils.ParseHexColor(c.Rings.Color); err != nil {
		return fmt.Errorf("rings.color: %w", err)
	}

	if c.Shake.Intensity < 0 || c.Shake.Duration < 0 {
		return fmt.Errorf("shake intensity/duration must not be negative")
	}

	if c.Detonation.FrameCount <= 0 || c.Detonation.FrameRate <= 0 {
		return fmt.Errorf("detonation.frameCount and detonation.frameRate must be positive")
	}
	if c.Detonation.ResetDelay < 0 {
		return fmt.Errorf("detonation.resetDelay must not be negative, got %.2f", c.Detonation.ResetDelay)
	}

	return nil
}

// LaunchY 返回指定视口高度下的发射姿态 Y 坐标
func (c *RocketConfig) LaunchY(height float64) float64 {
	return height - c.Flight.LaunchOffsetY
}

// PrepareFloorY 返回点火下沉阶段的底部边界
func (c *RocketConfig) PrepareFloorY(height float64) float64 {
	return height - c.Flight.PrepareFloorOffset
}
