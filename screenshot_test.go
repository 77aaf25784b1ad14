package hopper

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	g := NewGame(Config{}, Scene{})
	g.Screenshot("a")
	g.Screenshot("b")
	if g.PendingScreenshots() != 2 {
		t.Fatalf("pending = %d, want 2", g.PendingScreenshots())
	}
	if g.screenshotQueue[0] != "a" || g.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", g.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 255, // opaque stays
		64, 32, 0, 128,  // half alpha doubles
		0, 0, 0, 0,      // transparent stays
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{100, 50, 0, 255, 127, 63, 0, 128, 0, 0, 0, 0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}
