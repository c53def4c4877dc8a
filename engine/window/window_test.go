package window

import "testing"

func TestCursorToFramebuffer(t *testing.T) {
	tests := []struct {
		name                      string
		x, y                      float64
		windowWidth, windowHeight int
		fbWidth, fbHeight         int
		wantX, wantY              float64
	}{
		{"standard display", 640, 360, 1280, 720, 1280, 720, 640, 360},
		{"content scale 2", 640, 360, 1280, 720, 2560, 1440, 1280, 720},
		{"content scale 1.5", 100, 50, 1280, 720, 1920, 1080, 150, 75},
		{"window not sized yet", 640, 360, 0, 0, 2560, 1440, 640, 360},
		{"minimized framebuffer", 640, 360, 1280, 720, 0, 0, 640, 360},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := cursorToFramebuffer(tc.x, tc.y, tc.windowWidth, tc.windowHeight, tc.fbWidth, tc.fbHeight)
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("expected (%v, %v), got (%v, %v)", tc.wantX, tc.wantY, x, y)
			}
		})
	}
}

func TestCursorDragSpansViewport(t *testing.T) {
	// A drag across the whole window must span the whole framebuffer width, which is what
	// Viewport reports, so a full-width orbit is one full turn at any content scale.
	const windowWidth, windowHeight, fbWidth, fbHeight = 1280, 720, 2560, 1440

	startX, _ := cursorToFramebuffer(0, 0, windowWidth, windowHeight, fbWidth, fbHeight)
	endX, _ := cursorToFramebuffer(windowWidth, 0, windowWidth, windowHeight, fbWidth, fbHeight)
	if got := endX - startX; got != fbWidth {
		t.Errorf("expected a full-width drag of %d pixels, got %v", fbWidth, got)
	}
}
