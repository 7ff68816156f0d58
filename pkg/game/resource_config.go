package game

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level resource manifest loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
//
// Example from resources.yaml:
//
//	detonation:
//	  images:
//	    - id: IMAGE_EXPLOSION_0
//	      path: images/explosion/explosion_00.png
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // List of image resources in this group
	Sounds []SoundResource `yaml:"sounds"` // List of sound resources in this group
}

// ImageResource represents a single image resource definition.
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundResource represents a single sound/audio resource definition.
type SoundResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// ParseResourceConfig parses and validates a resource manifest.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource config: %w", err)
	}
	return &config, nil
}

// Validate checks that every resource has an ID and a path and that IDs are unique.
func (c *ResourceConfig) Validate() error {
	seen := make(map[string]string)
	check := func(group, id, p string) error {
		if id == "" || p == "" {
			return fmt.Errorf("group %s: resource with empty id or path (id=%q path=%q)", group, id, p)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("duplicate resource id %s in groups %s and %s", id, prev, group)
		}
		seen[id] = group
		return nil
	}

	for name, group := range c.Groups {
		for _, img := range group.Images {
			if err := check(name, img.ID, img.Path); err != nil {
				return err
			}
		}
		for _, snd := range group.Sounds {
			if err := check(name, snd.ID, snd.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	IMAGE_ROCKET -> assets/images/rocket/rocket.png
func (c *ResourceConfig) BuildResourceMap() map[string]string {
	resourceMap := make(map[string]string)
	for _, group := range c.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(c.BasePath, img.Path)
			// Add file extension if not present
			if path.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			resourceMap[img.ID] = fullPath
		}
		for _, sound := range group.Sounds {
			resourceMap[sound.ID] = buildFullPath(c.BasePath, sound.Path)
		}
	}
	return resourceMap
}

// FrameID returns the resource ID of frame i in a numbered sequence: PREFIX_i.
func FrameID(prefix string, i int) string {
	return fmt.Sprintf("%s_%d", prefix, i)
}

// ResolveFrameSequence maps a numbered frame sequence to file paths.
//
// Frames missing from the manifest (or rejected by exists) reuse frame 0's path.
// When frame 0 itself is unavailable every entry is "", and the caller is expected
// to substitute a generated placeholder.
//
// Returns the resolved paths and the number of frames that fell back.
func ResolveFrameSequence(resourceMap map[string]string, prefix string, count int, exists func(string) bool) ([]string, int) {
	lookup := func(i int) string {
		p, ok := resourceMap[FrameID(prefix, i)]
		if !ok || (exists != nil && !exists(p)) {
			return ""
		}
		return p
	}

	paths := make([]string, count)
	if count <= 0 {
		return paths, 0
	}

	first := lookup(0)
	paths[0] = first
	fallbacks := 0
	if first == "" {
		fallbacks++
	}

	for i := 1; i < count; i++ {
		if p := lookup(i); p != "" {
			paths[i] = p
			continue
		}
		paths[i] = first
		fallbacks++
	}
	return paths, fallbacks
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	// Simple path joining - handles the case where relative path might start with /
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
