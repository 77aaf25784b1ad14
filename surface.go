package hopper

// View identifies a renderable handle owned by a Surface. Zero means none.
type View uint32

// Surface is the retained presentation tree entities draw into. The core only
// pushes state; it never reads back from the surface.
//
// Views are created detached from any parent other than the one given to
// CreateView. Attach moves a view under another view; a zero parent means the
// surface root.
type Surface interface {
	CreateView(parent View) View
	DestroyView(v View)
	Attach(v, parent View)

	SetPosition(v View, x, y float64)
	SetSize(v View, w, h float64)
	SetOpacity(v View, alpha float64)
	SetRotation(v View, degrees float64)
	SetVisible(v View, visible bool)
	SetImage(v View, img *ImageInfo, frame int)
	SetShape(v View, s Shape)
	SetTint(v View, c Color)

	// SetOffset moves the whole tree, used by the camera viewport.
	SetOffset(x, y float64)
}

// nopSurface is used when a World has no presentation attached, e.g. in
// headless simulations. It still hands out distinct views so entity
// bookkeeping behaves identically.
type nopSurface struct {
	next View
}

func (s *nopSurface) CreateView(View) View {
	s.next++
	return s.next
}

func (s *nopSurface) DestroyView(View)                   {}
func (s *nopSurface) Attach(View, View)                  {}
func (s *nopSurface) SetPosition(View, float64, float64) {}
func (s *nopSurface) SetSize(View, float64, float64)     {}
func (s *nopSurface) SetOpacity(View, float64)           {}
func (s *nopSurface) SetRotation(View, float64)          {}
func (s *nopSurface) SetVisible(View, bool)              {}
func (s *nopSurface) SetImage(View, *ImageInfo, int)     {}
func (s *nopSurface) SetShape(View, Shape)               {}
func (s *nopSurface) SetTint(View, Color)                {}
func (s *nopSurface) SetOffset(float64, float64)         {}
