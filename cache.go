package hopper

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrMissingAsset is returned when a key was never registered with the Cache.
	// An image registered with zero frames is not missing.
	ErrMissingAsset = errors.New("hopper: missing asset")
	// ErrFrameOutOfRange is returned when a frame index does not exist on an image.
	ErrFrameOutOfRange = errors.New("hopper: frame out of range")
)

// Frame is a sub-rectangle of an image, in pixels.
type Frame struct {
	X, Y, Width, Height int
}

// ImageInfo is the read-only metadata the core needs about a cached image:
// its natural size and its frame table.
type ImageInfo struct {
	Key    string
	Width  int
	Height int
	// Frames is empty for plain images.
	Frames []Frame
	// Image is the pixel data. It may be nil for headless use.
	Image *ebiten.Image

	names map[string]int
}

// FrameSize returns the size an entity showing this image takes: the first
// frame's size for sheets and atlases, the natural size otherwise.
func (i *ImageInfo) FrameSize() (w, h int) {
	if len(i.Frames) > 0 {
		return i.Frames[0].Width, i.Frames[0].Height
	}
	return i.Width, i.Height
}

// Frame returns frame n.
func (i *ImageInfo) Frame(n int) (Frame, error) {
	if n < 0 || n >= len(i.Frames) {
		return Frame{}, fmt.Errorf("hopper: image %q frame %d of %d: %w", i.Key, n, len(i.Frames), ErrFrameOutOfRange)
	}
	return i.Frames[n], nil
}

// FrameIndex returns the index of a named atlas frame.
func (i *ImageInfo) FrameIndex(name string) (int, bool) {
	n, ok := i.names[name]
	return n, ok
}

// Cache is a key/value registry of images. Loading and decoding happen
// elsewhere; the core only reads from it.
type Cache struct {
	images map[string]*ImageInfo
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{images: make(map[string]*ImageInfo)}
}

// AddImage registers img under key using its pixel bounds as natural size.
func (c *Cache) AddImage(key string, img *ebiten.Image) *ImageInfo {
	b := img.Bounds()
	info := &ImageInfo{Key: key, Width: b.Dx(), Height: b.Dy(), Image: img}
	c.images[key] = info
	return info
}

// AddImageInfo registers prepared metadata. Its Key is overwritten with key.
func (c *Cache) AddImageInfo(key string, info ImageInfo) *ImageInfo {
	info.Key = key
	stored := &info
	c.images[key] = stored
	return stored
}

// AddSpritesheet registers img under key and slices it into a grid of
// frameW x frameH frames, row by row. maxFrames limits the count; zero or
// negative keeps every whole frame.
func (c *Cache) AddSpritesheet(key string, img *ebiten.Image, frameW, frameH, maxFrames int) *ImageInfo {
	b := img.Bounds()
	info := &ImageInfo{
		Key:    key,
		Width:  b.Dx(),
		Height: b.Dy(),
		Frames: gridFrames(b.Dx(), b.Dy(), frameW, frameH, maxFrames),
		Image:  img,
	}
	c.images[key] = info
	return info
}

// gridFrames slices a w x h sheet into frames of fw x fh, row-major.
func gridFrames(w, h, fw, fh, maxFrames int) []Frame {
	if fw <= 0 || fh <= 0 {
		return nil
	}
	var frames []Frame
	for y := 0; y+fh <= h; y += fh {
		for x := 0; x+fw <= w; x += fw {
			if maxFrames > 0 && len(frames) == maxFrames {
				return frames
			}
			frames = append(frames, Frame{X: x, Y: y, Width: fw, Height: fh})
		}
	}
	return frames
}

// Image looks up key. The error wraps ErrMissingAsset when nothing was
// registered under it.
func (c *Cache) Image(key string) (*ImageInfo, error) {
	info, ok := c.images[key]
	if !ok {
		return nil, fmt.Errorf("hopper: image %q: %w", key, ErrMissingAsset)
	}
	return info, nil
}

// Has reports whether key is registered.
func (c *Cache) Has(key string) bool {
	_, ok := c.images[key]
	return ok
}

// Remove drops key from the cache.
func (c *Cache) Remove(key string) {
	delete(c.images, key)
}

// LoadAtlas parses TexturePacker JSON data and registers the frames as an
// image under key. Supports both the hash format (single "frames" object)
// and the array format ("textures" array; only the first page is used, since
// an ImageInfo has a single image). Frames are indexed in name order.
func (c *Cache) LoadAtlas(key string, jsonData []byte, img *ebiten.Image) (*ImageInfo, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("hopper: failed to parse atlas JSON: %w", err)
	}

	var frames map[string]jsonFrame
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("hopper: failed to parse atlas textures array: %w", err)
		}
		if len(textures) > 0 {
			frames = textures[0].Frames
		}
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("hopper: failed to parse atlas frames: %w", err)
		}
	default:
		return nil, fmt.Errorf("hopper: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)

	info := &ImageInfo{Key: key, Image: img, names: make(map[string]int, len(names))}
	if img != nil {
		b := img.Bounds()
		info.Width, info.Height = b.Dx(), b.Dy()
	}
	for i, name := range names {
		f := frames[name].Frame
		info.Frames = append(info.Frames, Frame{X: f.X, Y: f.Y, Width: f.W, Height: f.H})
		info.names[name] = i
	}
	c.images[key] = info
	return info, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
	Trimmed bool     `json:"trimmed"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}
