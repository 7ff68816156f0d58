package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRocketConfig_Valid(t *testing.T) {
	cfg := DefaultRocketConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.Particles.Count != 50 {
		t.Errorf("expected 50 particles per burst, got %d", cfg.Particles.Count)
	}
	if cfg.Rings.Count != 5 || cfg.Rings.Interval != 0.1 {
		t.Errorf("expected 5 rings 100ms apart, got %d / %.2f", cfg.Rings.Count, cfg.Rings.Interval)
	}
	if got := len(cfg.Particles.Colors()); got != 5 {
		t.Errorf("expected 5 palette colors, got %d", got)
	}
	// Shooting 的摆动频率约为 Preparing 的两倍
	if cfg.Motion.Shooting.WobbleFrequency != 2*cfg.Motion.Preparing.WobbleFrequency {
		t.Errorf("shooting wobble frequency should be twice preparing's")
	}
}

func TestParseRocketConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *RocketConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
seed: 1234
flight:
  prepareEnabled: false
particles:
  count: 80
`,
			validate: func(t *testing.T, cfg *RocketConfig) {
				if cfg.Seed != 1234 {
					t.Errorf("expected seed 1234, got %d", cfg.Seed)
				}
				if cfg.Flight.PrepareEnabled {
					t.Error("expected prepareEnabled=false")
				}
				if cfg.Particles.Count != 80 {
					t.Errorf("expected 80 particles, got %d", cfg.Particles.Count)
				}
				// 未出现的字段保持默认值
				if cfg.Particles.LifeDecay != 0.02 {
					t.Errorf("expected default lifeDecay 0.02, got %f", cfg.Particles.LifeDecay)
				}
				if cfg.Motion.Shooting.StepY != -8 {
					t.Errorf("expected default shooting step -8, got %f", cfg.Motion.Shooting.StepY)
				}
			},
		},
		{
			name: "palette replaced",
			yamlContent: `
particles:
  palette: ["#112233", "#445566"]
`,
			validate: func(t *testing.T, cfg *RocketConfig) {
				colors := cfg.Particles.Colors()
				if len(colors) != 2 || colors[0].R != 0x11 || colors[1].B != 0x66 {
					t.Errorf("unexpected palette %+v", colors)
				}
			},
		},
		{
			name: "invalid palette color",
			yamlContent: `
particles:
  palette: ["orange"]
`,
			wantErr:     true,
			errContains: "palette",
		},
		{
			name: "shooting must ascend",
			yamlContent: `
motion:
  shooting:
    stepY: 3
`,
			wantErr:     true,
			errContains: "ascend",
		},
		{
			name: "prepare floor above launch pose",
			yamlContent: `
flight:
  launchOffsetY: 100
  prepareFloorOffset: 150
`,
			wantErr:     true,
			errContains: "prepareFloorOffset",
		},
		{
			name:        "malformed yaml",
			yamlContent: "flight: [",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseRocketConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadRocketConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rocket.yaml")
	content := "shake:\n  intensity: 4\n  duration: 0.25\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadRocketConfig(path)
	if err != nil {
		t.Fatalf("LoadRocketConfig failed: %v", err)
	}
	if cfg.Shake.Intensity != 4 || cfg.Shake.Duration != 0.25 {
		t.Errorf("unexpected shake config %+v", cfg.Shake)
	}
}

func TestLoadRocketConfig_MissingFile(t *testing.T) {
	_, err := LoadRocketConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read rocket config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestRepositoryRocketYAML 仓库自带的 data/rocket.yaml 必须能通过验证
func TestRepositoryRocketYAML(t *testing.T) {
	cfg, err := LoadRocketConfig(filepath.Join("..", "..", "data", "rocket.yaml"))
	if err != nil {
		t.Fatalf("data/rocket.yaml should load: %v", err)
	}
	if cfg.Detonation.FramePrefix == "" {
		t.Error("expected a detonation frame prefix")
	}
}
