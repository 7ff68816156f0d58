package game

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ResourceManager is responsible for centralized management of image resources.
// It resolves resource IDs through the YAML manifest (data/resources.yaml),
// loads images from a read-only file system and caches them so every image
// is decoded only once.
//
// The file system is usually embedded.FS() (assets compiled into the binary),
// but any fs.FS works, e.g. os.DirFS(".") during development.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The caches are plain maps and are
// only touched from the ebiten game loop.
type ResourceManager struct {
	fsys       fs.FS
	imageCache map[string]*ebiten.Image // Cache for loaded images: path -> Image

	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
}

// NewResourceManager creates a ResourceManager reading from fsys.
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:        fsys,
		imageCache:  make(map[string]*ebiten.Image),
		resourceMap: make(map[string]string),
	}
}

// LoadResourceConfig loads and parses the YAML resource manifest.
//
// Example:
//
//	rm := NewResourceManager(embedded.FS())
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    log.Printf("Failed to load resource config: %v", err)
//	}
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("failed to load resource config %s: %w", configPath, err)
	}

	rm.config = config
	rm.resourceMap = config.BuildResourceMap()
	log.Printf("[ResourceManager] Loaded %d resource IDs from %s", len(rm.resourceMap), configPath)
	return nil
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := rm.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID loads an image resource using its resource ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// exists reports whether path can be opened from the resource file system.
func (rm *ResourceManager) exists(path string) bool {
	file, err := rm.fsys.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// LoadFrameSequence loads a numbered frame sequence PREFIX_0 .. PREFIX_{count-1}.
//
// It never fails: frames that are missing or fail to decode reuse frame 0,
// and when frame 0 itself is unavailable a generated fireball placeholder
// (placeholderSize pixels square) takes its place.
func (rm *ResourceManager) LoadFrameSequence(prefix string, count int, placeholderSize int) []*ebiten.Image {
	paths, fallbacks := ResolveFrameSequence(rm.resourceMap, prefix, count, rm.exists)
	if fallbacks > 0 {
		log.Printf("[ResourceManager] %s: %d/%d frames missing, falling back to frame 0", prefix, fallbacks, count)
	}

	frames := make([]*ebiten.Image, count)
	if count == 0 {
		return frames
	}

	var first *ebiten.Image
	if paths[0] != "" {
		img, err := rm.LoadImage(paths[0])
		if err != nil {
			log.Printf("[ResourceManager] %s: frame 0 unusable: %v", prefix, err)
		} else {
			first = img
		}
	}
	if first == nil {
		log.Printf("[ResourceManager] %s: using generated placeholder", prefix)
		first = NewPlaceholderFireball(placeholderSize)
	}

	for i := range frames {
		if i == 0 || paths[i] == "" || paths[i] == paths[0] {
			frames[i] = first
			continue
		}
		img, err := rm.LoadImage(paths[i])
		if err != nil {
			log.Printf("[ResourceManager] %s: frame %d unusable, using frame 0: %v", prefix, i, err)
			img = first
		}
		frames[i] = img
	}
	return frames
}

// LoadImageOrPlaceholder loads an image by ID and falls back to the given generator.
func (rm *ResourceManager) LoadImageOrPlaceholder(resourceID string, placeholder func() *ebiten.Image) *ebiten.Image {
	img, err := rm.LoadImageByID(resourceID)
	if err != nil {
		log.Printf("[ResourceManager] %s unavailable, using placeholder: %v", resourceID, err)
		return placeholder()
	}
	return img
}

// NewPlaceholderFireball draws concentric orange/yellow circles.
func NewPlaceholderFireball(size int) *ebiten.Image {
	if size <= 0 {
		size = 64
	}
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	layers := []struct {
		radius float32
		clr    color.RGBA
	}{
		{1.0, color.RGBA{R: 255, G: 69, A: 200}},
		{0.7, color.RGBA{R: 255, G: 165, A: 230}},
		{0.4, color.RGBA{R: 255, G: 230, B: 120, A: 255}},
	}
	for _, l := range layers {
		vector.DrawFilledCircle(img, c, c, c*l.radius, l.clr, true)
	}
	return img
}

// NewPlaceholderRocket draws a simple rocket silhouette (body, nose, fins).
func NewPlaceholderRocket(width, height int) *ebiten.Image {
	img := ebiten.NewImage(width, height)
	w, h := float32(width), float32(height)
	body := color.RGBA{R: 230, G: 230, B: 235, A: 255}
	red := color.RGBA{R: 220, G: 40, B: 40, A: 255}

	vector.DrawFilledRect(img, w*0.2, h*0.2, w*0.6, h*0.6, body, false)
	vector.DrawFilledRect(img, w*0.3, 0, w*0.4, h*0.2, red, false)
	vector.DrawFilledRect(img, 0, h*0.8, w, h*0.2, red, false)
	vector.DrawFilledCircle(img, w/2, h*0.4, w*0.15, color.RGBA{R: 80, G: 160, B: 230, A: 255}, true)
	return img
}
