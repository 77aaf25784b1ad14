package hopper

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// circleMaskSize is the edge length of the cached circle mask, in pixels.
const circleMaskSize = 128

// ViewState is the retained state of one view on an EbitenSurface.
type ViewState struct {
	Parent        View
	X, Y          float64
	Width, Height float64
	Alpha         float64
	// Rotation is in degrees, around the view's center.
	Rotation float64
	Visible  bool
	Image    *ImageInfo
	Frame    int
	Shape    Shape
	Tint     Color
}

type surfaceView struct {
	ViewState
	children []View
}

// EbitenSurface is a retained view tree drawn with ebiten. The core pushes
// state into it during World.Render and Draw paints the tree onto a screen,
// shifted by the camera offset. Views without an image are filled with
// ColorLime times their tint; views without area draw nothing but still
// group their children.
type EbitenSurface struct {
	views   map[View]*surfaceView
	root    []View
	next    View
	offsetX float64
	offsetY float64

	op          ebiten.DrawImageOptions
	whitePixel  *ebiten.Image
	circleImage *ebiten.Image
}

// NewEbitenSurface creates an empty surface.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{views: make(map[View]*surfaceView)}
}

// CreateView adds a visible view under parent. A zero or unknown parent puts
// it at the root.
func (s *EbitenSurface) CreateView(parent View) View {
	s.next++
	v := s.next
	s.views[v] = &surfaceView{ViewState: ViewState{Alpha: 1, Visible: true, Tint: ColorWhite}}
	s.link(v, parent)
	return v
}

// DestroyView removes v. Its children stay registered but are not drawn until
// attached elsewhere.
func (s *EbitenSurface) DestroyView(v View) {
	sv, ok := s.views[v]
	if !ok {
		return
	}
	s.unlink(v, sv.Parent)
	delete(s.views, v)
}

// Attach moves v under parent.
func (s *EbitenSurface) Attach(v, parent View) {
	sv, ok := s.views[v]
	if !ok {
		return
	}
	s.unlink(v, sv.Parent)
	s.link(v, parent)
}

func (s *EbitenSurface) link(v, parent View) {
	sv := s.views[v]
	if p, ok := s.views[parent]; ok && parent != v {
		sv.Parent = parent
		p.children = append(p.children, v)
		return
	}
	sv.Parent = 0
	s.root = append(s.root, v)
}

func (s *EbitenSurface) unlink(v, parent View) {
	if p, ok := s.views[parent]; ok {
		p.children = removeView(p.children, v)
		return
	}
	s.root = removeView(s.root, v)
}

func removeView(list []View, v View) []View {
	for i, c := range list {
		if c == v {
			copy(list[i:], list[i+1:])
			return list[:len(list)-1]
		}
	}
	return list
}

func (s *EbitenSurface) SetPosition(v View, x, y float64) {
	if sv, ok := s.views[v]; ok {
		sv.X, sv.Y = x, y
	}
}

func (s *EbitenSurface) SetSize(v View, w, h float64) {
	if sv, ok := s.views[v]; ok {
		sv.Width, sv.Height = w, h
	}
}

func (s *EbitenSurface) SetOpacity(v View, alpha float64) {
	if sv, ok := s.views[v]; ok {
		sv.Alpha = alpha
	}
}

func (s *EbitenSurface) SetRotation(v View, degrees float64) {
	if sv, ok := s.views[v]; ok {
		sv.Rotation = degrees
	}
}

func (s *EbitenSurface) SetVisible(v View, visible bool) {
	if sv, ok := s.views[v]; ok {
		sv.Visible = visible
	}
}

func (s *EbitenSurface) SetImage(v View, img *ImageInfo, frame int) {
	if sv, ok := s.views[v]; ok {
		sv.Image, sv.Frame = img, frame
	}
}

func (s *EbitenSurface) SetShape(v View, shape Shape) {
	if sv, ok := s.views[v]; ok {
		sv.Shape = shape
	}
}

func (s *EbitenSurface) SetTint(v View, c Color) {
	if sv, ok := s.views[v]; ok {
		sv.Tint = c
	}
}

func (s *EbitenSurface) SetOffset(x, y float64) {
	s.offsetX, s.offsetY = x, y
}

// Offset returns the current tree offset.
func (s *EbitenSurface) Offset() (x, y float64) {
	return s.offsetX, s.offsetY
}

// State returns a copy of the retained state of v.
func (s *EbitenSurface) State(v View) (ViewState, bool) {
	sv, ok := s.views[v]
	if !ok {
		return ViewState{}, false
	}
	return sv.ViewState, true
}

// Children returns the child views of v, or the root views for zero.
func (s *EbitenSurface) Children(v View) []View {
	if v == 0 {
		return s.root
	}
	if sv, ok := s.views[v]; ok {
		return sv.children
	}
	return nil
}

// NumViews returns the number of live views.
func (s *EbitenSurface) NumViews() int {
	return len(s.views)
}

// Draw paints every visible view onto screen in tree order.
func (s *EbitenSurface) Draw(screen *ebiten.Image) {
	for _, v := range s.root {
		s.drawView(screen, v)
	}
}

func (s *EbitenSurface) drawView(screen *ebiten.Image, v View) {
	sv, ok := s.views[v]
	if !ok || !sv.Visible {
		return
	}
	if sv.Width > 0 && sv.Height > 0 && sv.Alpha > 0 {
		s.drawSelf(screen, sv)
	}
	for _, c := range sv.children {
		s.drawView(screen, c)
	}
}

func (s *EbitenSurface) drawSelf(screen *ebiten.Image, sv *surfaceView) {
	src, fill := s.source(sv)
	if src == nil {
		return
	}
	b := src.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	if sw == 0 || sh == 0 {
		return
	}

	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(sv.Width/sw, sv.Height/sh)
	if sv.Rotation != 0 {
		op.GeoM.Translate(-sv.Width/2, -sv.Height/2)
		op.GeoM.Rotate(DegToRad(sv.Rotation))
		op.GeoM.Translate(sv.Width/2, sv.Height/2)
	}
	op.GeoM.Translate(sv.X+s.offsetX, sv.Y+s.offsetY)

	c := sv.Tint
	if fill {
		c = Color{ColorLime.R * c.R, ColorLime.G * c.G, ColorLime.B * c.B, c.A}
	}
	a := float32(c.A * sv.Alpha)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Filter = ebiten.FilterNearest

	screen.DrawImage(src, op)
}

// source picks the image to draw for a view. fill is true when the view has
// no image and is drawn as a solid shape.
func (s *EbitenSurface) source(sv *surfaceView) (img *ebiten.Image, fill bool) {
	if sv.Image != nil && sv.Image.Image != nil {
		info := sv.Image
		if len(info.Frames) == 0 {
			return info.Image, false
		}
		f, err := info.Frame(sv.Frame)
		if err != nil {
			return nil, false
		}
		r := image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
		return info.Image.SubImage(r).(*ebiten.Image), false
	}
	if sv.Shape == ShapeCircle {
		return s.circleMask(), true
	}
	return s.white(), true
}

func (s *EbitenSurface) white() *ebiten.Image {
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(color.White)
	}
	return s.whitePixel
}

func (s *EbitenSurface) circleMask() *ebiten.Image {
	if s.circleImage == nil {
		s.circleImage = ebiten.NewImage(circleMaskSize, circleMaskSize)
		r := float32(circleMaskSize) / 2
		vector.DrawFilledCircle(s.circleImage, r, r, r, color.White, true)
	}
	return s.circleImage
}
