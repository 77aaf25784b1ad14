package hopper

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const hashAtlasJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false
    },
    "enemy.png": {
      "frame": {"x": 64, "y": 0, "w": 32, "h": 48},
      "rotated": false,
      "trimmed": false
    }
  },
  "meta": {"image": "atlas.png"}
}`

const arrayAtlasJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "coin.png": {"frame": {"x": 0, "y": 0, "w": 16, "h": 16}}
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "ignored.png": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}
      }
    }
  ]
}`

func TestGridFrames(t *testing.T) {
	tests := []struct {
		name          string
		w, h, fw, fh  int
		max, wantN    int
		wantLastFrame Frame
	}{
		{"full grid", 64, 32, 16, 16, 0, 8, Frame{48, 16, 16, 16}},
		{"partial cells dropped", 70, 20, 16, 16, 0, 4, Frame{48, 0, 16, 16}},
		{"limited", 64, 32, 16, 16, 3, 3, Frame{32, 0, 16, 16}},
		{"frame larger than sheet", 8, 8, 16, 16, 0, 0, Frame{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := gridFrames(tt.w, tt.h, tt.fw, tt.fh, tt.max)
			if len(frames) != tt.wantN {
				t.Fatalf("len = %d, want %d", len(frames), tt.wantN)
			}
			if tt.wantN > 0 && frames[len(frames)-1] != tt.wantLastFrame {
				t.Errorf("last frame = %+v, want %+v", frames[len(frames)-1], tt.wantLastFrame)
			}
		})
	}
	if gridFrames(64, 64, 0, 16, 0) != nil {
		t.Error("zero frame width should give no frames")
	}
}

func TestCacheMissingVersusEmpty(t *testing.T) {
	c := NewCache()
	c.AddImageInfo("empty", ImageInfo{Key: "other"})

	if _, err := c.Image("nope"); !errors.Is(err, ErrMissingAsset) {
		t.Errorf("missing key err = %v, want ErrMissingAsset", err)
	}
	info, err := c.Image("empty")
	if err != nil {
		t.Fatalf("empty image err = %v", err)
	}
	if info.Key != "empty" {
		t.Errorf("Key = %q, want overwritten with cache key", info.Key)
	}
	if _, err := info.Frame(0); !errors.Is(err, ErrFrameOutOfRange) {
		t.Errorf("frame of empty image err = %v", err)
	}
	if !c.Has("empty") || c.Has("nope") {
		t.Error("Has mismatch")
	}
	c.Remove("empty")
	if c.Has("empty") {
		t.Error("Remove kept the key")
	}
}

func TestImageInfoFrameSize(t *testing.T) {
	plain := &ImageInfo{Width: 40, Height: 30}
	if w, h := plain.FrameSize(); w != 40 || h != 30 {
		t.Errorf("plain FrameSize = %dx%d", w, h)
	}
	sheet := &ImageInfo{Width: 40, Height: 30, Frames: []Frame{{0, 0, 10, 15}}}
	if w, h := sheet.FrameSize(); w != 10 || h != 15 {
		t.Errorf("sheet FrameSize = %dx%d", w, h)
	}
}

func TestCacheAddImageAndSpritesheet(t *testing.T) {
	c := NewCache()
	img := ebiten.NewImage(64, 32)

	info := c.AddImage("plain", img)
	if info.Width != 64 || info.Height != 32 || len(info.Frames) != 0 {
		t.Errorf("plain = %dx%d, %d frames", info.Width, info.Height, len(info.Frames))
	}

	sheet := c.AddSpritesheet("sheet", img, 16, 16, 0)
	if len(sheet.Frames) != 8 {
		t.Errorf("sheet frames = %d, want 8", len(sheet.Frames))
	}
	got, err := c.Image("sheet")
	if err != nil || got != sheet {
		t.Errorf("Image(sheet) = %v, %v", got, err)
	}
}

func TestLoadAtlasHash(t *testing.T) {
	c := NewCache()
	info, err := c.LoadAtlas("atlas", []byte(hashAtlasJSON), nil)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if len(info.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(info.Frames))
	}
	// Frames are sorted by name: enemy before hero.
	i, ok := info.FrameIndex("enemy.png")
	if !ok || i != 0 {
		t.Errorf("FrameIndex(enemy) = %d, %v", i, ok)
	}
	f, _ := info.Frame(1)
	if f != (Frame{0, 0, 64, 64}) {
		t.Errorf("hero frame = %+v", f)
	}
	if _, ok := info.FrameIndex("missing.png"); ok {
		t.Error("unknown frame name found")
	}
	if !c.Has("atlas") {
		t.Error("atlas not registered")
	}
}

func TestLoadAtlasArrayUsesFirstPage(t *testing.T) {
	c := NewCache()
	img := ebiten.NewImage(128, 64)
	info, err := c.LoadAtlas("pages", []byte(arrayAtlasJSON), img)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if len(info.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(info.Frames))
	}
	if _, ok := info.FrameIndex("ignored.png"); ok {
		t.Error("second page frames should be ignored")
	}
	if info.Width != 128 || info.Height != 64 {
		t.Errorf("size = %dx%d, want image bounds", info.Width, info.Height)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	c := NewCache()
	for _, data := range []string{`{not json`, `{"meta": {}}`, `{"frames": [1, 2]}`} {
		if _, err := c.LoadAtlas("bad", []byte(data), nil); err == nil {
			t.Errorf("LoadAtlas(%s) succeeded", data)
		}
	}
	if c.Has("bad") {
		t.Error("failed atlas registered")
	}
}

func TestLoadAtlasEmptyFrames(t *testing.T) {
	c := NewCache()
	info, err := c.LoadAtlas("none", []byte(`{"frames": {}}`), nil)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if len(info.Frames) != 0 {
		t.Errorf("frames = %d, want 0", len(info.Frames))
	}
	w := NewWorld(800, 600)
	w.SetCache(c)
	e := w.NewSprite(0, 0, "none", 0)
	if e.Image() != info {
		t.Error("atlas without frames should still be usable")
	}
}
