package game

import (
	"os"
	"testing"
)

const testManifest = `
version: "1.0"
base_path: assets
groups:
  rocket:
    images:
      - id: IMAGE_ROCKET
        path: images/rocket/rocket
  detonation:
    images:
      - id: IMAGE_EXPLOSION_0
        path: images/explosion/explosion_00.png
      - id: IMAGE_EXPLOSION_1
        path: images/explosion/explosion_01.png
      - id: IMAGE_EXPLOSION_3
        path: images/explosion/explosion_03.png
    sounds:
      - id: SOUND_BOOM
        path: sounds/boom.ogg
`

// TestParseResourceConfig 解析资源清单并构建 ID -> 路径映射
func TestParseResourceConfig(t *testing.T) {
	config, err := ParseResourceConfig([]byte(testManifest))
	if err != nil {
		t.Fatalf("ParseResourceConfig failed: %v", err)
	}

	if config.BasePath != "assets" {
		t.Errorf("Expected base_path 'assets', got '%s'", config.BasePath)
	}

	resourceMap := config.BuildResourceMap()
	tests := map[string]string{
		"IMAGE_ROCKET":      "assets/images/rocket/rocket.png",
		"IMAGE_EXPLOSION_0": "assets/images/explosion/explosion_00.png",
		"SOUND_BOOM":        "assets/sounds/boom.ogg",
	}
	for id, want := range tests {
		if got := resourceMap[id]; got != want {
			t.Errorf("resourceMap[%s] = %q, want %q", id, got, want)
		}
	}
}

// TestParseResourceConfig_Invalid 测试非法清单
func TestParseResourceConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"格式错误", "groups: [1, 2"},
		{"缺少路径", "groups:\n  a:\n    images:\n      - id: IMAGE_A\n"},
		{"重复 ID", "groups:\n  a:\n    images:\n      - id: X\n        path: a.png\n  b:\n    images:\n      - id: X\n        path: b.png\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResourceConfig([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestResolveFrameSequence 缺失的帧回退到第 0 帧
func TestResolveFrameSequence(t *testing.T) {
	config, err := ParseResourceConfig([]byte(testManifest))
	if err != nil {
		t.Fatal(err)
	}
	resourceMap := config.BuildResourceMap()
	frame0 := "assets/images/explosion/explosion_00.png"

	paths, fallbacks := ResolveFrameSequence(resourceMap, "IMAGE_EXPLOSION", 5, nil)
	want := []string{
		frame0,
		"assets/images/explosion/explosion_01.png",
		frame0,
		"assets/images/explosion/explosion_03.png",
		frame0,
	}
	if fallbacks != 2 {
		t.Errorf("fallbacks = %d, want 2", fallbacks)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, paths[i], want[i])
		}
	}

	// 文件不存在时同样回退
	onlyFirst := func(p string) bool { return p == frame0 }
	paths, fallbacks = ResolveFrameSequence(resourceMap, "IMAGE_EXPLOSION", 4, onlyFirst)
	if fallbacks != 3 {
		t.Errorf("fallbacks = %d, want 3", fallbacks)
	}
	for i, p := range paths {
		if p != frame0 {
			t.Errorf("frame %d = %q, want fallback to frame 0", i, p)
		}
	}
}

// TestResolveFrameSequence_NoFirstFrame 第 0 帧缺失时全部为空，由调用方生成占位图
func TestResolveFrameSequence_NoFirstFrame(t *testing.T) {
	paths, fallbacks := ResolveFrameSequence(map[string]string{}, "IMAGE_EXPLOSION", 3, nil)
	if fallbacks != 3 {
		t.Errorf("fallbacks = %d, want 3", fallbacks)
	}
	for i, p := range paths {
		if p != "" {
			t.Errorf("frame %d = %q, want empty", i, p)
		}
	}

	if paths, _ := ResolveFrameSequence(nil, "X", 0, nil); len(paths) != 0 {
		t.Errorf("count 0 returned %d paths", len(paths))
	}
}

// TestProjectManifest 仓库中的资源清单完整覆盖 16 帧爆炸动画
func TestProjectManifest(t *testing.T) {
	data, err := os.ReadFile("../../data/resources.yaml")
	if err != nil {
		t.Skip("Skipping test - resource manifest not found:", err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		t.Fatalf("ParseResourceConfig failed: %v", err)
	}

	exists := func(p string) bool {
		_, err := os.Stat("../../" + p)
		return err == nil
	}
	_, fallbacks := ResolveFrameSequence(config.BuildResourceMap(), "IMAGE_EXPLOSION", 16, exists)
	if fallbacks != 0 {
		t.Errorf("%d explosion frames missing from the repository", fallbacks)
	}
}

// TestFrameID 测试帧资源 ID 格式
func TestFrameID(t *testing.T) {
	if got := FrameID("IMAGE_EXPLOSION", 12); got != "IMAGE_EXPLOSION_12" {
		t.Errorf("FrameID = %q", got)
	}
}
