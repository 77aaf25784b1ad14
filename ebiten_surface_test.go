package hopper

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEbitenSurfaceCreateView(t *testing.T) {
	s := NewEbitenSurface()
	v := s.CreateView(0)
	st, ok := s.State(v)
	if !ok {
		t.Fatal("State of new view not found")
	}
	if !st.Visible || st.Alpha != 1 || st.Tint != ColorWhite || st.Parent != 0 {
		t.Errorf("new view state = %+v", st)
	}
	if len(s.Children(0)) != 1 || s.NumViews() != 1 {
		t.Error("view not at the root")
	}
}

func TestEbitenSurfaceTree(t *testing.T) {
	s := NewEbitenSurface()
	a := s.CreateView(0)
	b := s.CreateView(a)
	c := s.CreateView(0)

	if st, _ := s.State(b); st.Parent != a {
		t.Errorf("b parent = %d, want %d", st.Parent, a)
	}
	if kids := s.Children(a); len(kids) != 1 || kids[0] != b {
		t.Errorf("children of a = %v", kids)
	}

	s.Attach(b, c)
	if len(s.Children(a)) != 0 || len(s.Children(c)) != 1 {
		t.Error("Attach did not move the view")
	}
	s.Attach(b, 0)
	if st, _ := s.State(b); st.Parent != 0 || len(s.Children(0)) != 3 {
		t.Error("Attach to zero should move to the root")
	}

	s.DestroyView(b)
	if _, ok := s.State(b); ok || s.NumViews() != 2 {
		t.Error("destroyed view still registered")
	}
	s.DestroyView(b)
	s.Attach(b, a)
	s.SetPosition(b, 1, 1)
}

func TestEbitenSurfaceUnknownParentIsRoot(t *testing.T) {
	s := NewEbitenSurface()
	v := s.CreateView(99)
	if st, _ := s.State(v); st.Parent != 0 {
		t.Errorf("parent = %d, want root", st.Parent)
	}
	s.Attach(v, v)
	if st, _ := s.State(v); st.Parent != 0 {
		t.Error("a view cannot be its own parent")
	}
}

func TestEbitenSurfaceSetters(t *testing.T) {
	s := NewEbitenSurface()
	v := s.CreateView(0)
	img := &ImageInfo{Key: "k", Width: 8, Height: 8}

	s.SetPosition(v, 10, 20)
	s.SetSize(v, 30, 40)
	s.SetOpacity(v, 0.5)
	s.SetRotation(v, 45)
	s.SetVisible(v, false)
	s.SetImage(v, img, 2)
	s.SetShape(v, ShapeCircle)
	s.SetTint(v, ColorLime)
	s.SetOffset(-5, -6)

	want := ViewState{
		X: 10, Y: 20, Width: 30, Height: 40,
		Alpha: 0.5, Rotation: 45, Visible: false,
		Image: img, Frame: 2, Shape: ShapeCircle, Tint: ColorLime,
	}
	if st, _ := s.State(v); st != want {
		t.Errorf("state = %+v, want %+v", st, want)
	}
	if x, y := s.Offset(); x != -5 || y != -6 {
		t.Errorf("Offset = (%v, %v)", x, y)
	}
}

func TestEbitenSurfaceMirrorsWorld(t *testing.T) {
	w := NewWorld(2000, 1000)
	w.Camera().SetSize(800, 600)
	s := NewEbitenSurface()
	w.SetSurface(s)

	g := w.NewGroup("g")
	e := g.Create(100, 50, "", 0, true)
	e.Alpha = 0.25
	e.Angle = 30
	child := w.NewSprite(0, 0, "", 0)
	e.Add(child)

	w.Update(16)
	w.Render()

	st, ok := s.State(e.view)
	if !ok {
		t.Fatal("entity view missing")
	}
	if st.Parent != g.view {
		t.Error("entity view should sit under the group view")
	}
	if st.X != 100 || st.Y != 50 || st.Width != 32 || st.Alpha != 0.25 || st.Rotation != 30 || !st.Visible {
		t.Errorf("entity state = %+v", st)
	}
	if cst, _ := s.State(child.view); cst.Parent != e.view {
		t.Error("child view should sit under the entity view")
	}

	e.Kill()
	if _, ok := s.State(e.view); ok {
		t.Error("killed entity still has a view")
	}
	e.Revive()
	if cst, _ := s.State(child.view); cst.Parent != e.view {
		t.Error("revive should reattach child views")
	}
}

func TestEbitenSurfaceDraw(t *testing.T) {
	s := NewEbitenSurface()
	screen := ebiten.NewImage(64, 64)

	rect := s.CreateView(0)
	s.SetSize(rect, 10, 10)
	circle := s.CreateView(rect)
	s.SetSize(circle, 10, 10)
	s.SetShape(circle, ShapeCircle)
	s.SetRotation(circle, 90)
	hidden := s.CreateView(0)
	s.SetSize(hidden, 10, 10)
	s.SetVisible(hidden, false)
	empty := s.CreateView(0)
	s.SetSize(empty, 0, 10)

	img := ebiten.NewImage(16, 16)
	sheet := &ImageInfo{Key: "sheet", Width: 16, Height: 16, Image: img, Frames: gridFrames(16, 16, 8, 8, 0)}
	framed := s.CreateView(0)
	s.SetSize(framed, 8, 8)
	s.SetImage(framed, sheet, 3)
	bad := s.CreateView(0)
	s.SetSize(bad, 8, 8)
	s.SetImage(bad, sheet, 9)

	s.Draw(screen)
	if s.whitePixel == nil || s.circleImage == nil {
		t.Error("fill sources should be created on first draw")
	}
}
