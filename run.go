package folio

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height default to the page's viewport size.
	Width, Height int
	ShowFPS       bool
	Background    Color
	// WheelStep is the scroll distance per wheel notch. Defaults to 60.
	WheelStep float64
	// AnchorDuration is the smooth-scroll time for number-key navigation.
	AnchorDuration time.Duration
}

const defaultWheelStep = 60

// DefaultBackground is a near-black page background.
var DefaultBackground = Color{R: 0.04, G: 0.04, B: 0.06, A: 1}

// sectionTints are cycled for section panels.
var sectionTints = [...]Color{
	{R: 0.10, G: 0.10, B: 0.16, A: 1},
	{R: 0.08, G: 0.12, B: 0.15, A: 1},
	{R: 0.13, G: 0.09, B: 0.14, A: 1},
}

// paletteColors maps Palette names to drawing colors.
var paletteColors = map[string]Color{
	"primary":   {R: 0.39, G: 0.40, B: 0.95, A: 1},
	"secondary": {R: 0.55, G: 0.36, B: 0.96, A: 1},
	"accent":    {R: 0.93, G: 0.28, B: 0.60, A: 1},
	"warm":      {R: 0.98, G: 0.45, B: 0.09, A: 1},
	"emerald":   {R: 0.06, G: 0.73, B: 0.51, A: 1},
	"amber":     {R: 0.96, G: 0.62, B: 0.04, A: 1},
}

// Run opens a window and drives page with ebiten's game loop. Wheel and
// arrow keys scroll, the cursor feeds pointer events, number keys jump to
// sections, and window resizes resize the viewport. The page is closed when
// the window closes.
func Run(page *Page, cfg RunConfig) error {
	w, h := page.Viewport().Size()
	if cfg.Width <= 0 {
		cfg.Width = int(w)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(h)
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = defaultWheelStep
	}
	if cfg.AnchorDuration == 0 {
		cfg.AnchorDuration = DurationCinematic
	}
	if cfg.Background == (Color{}) {
		cfg.Background = DefaultBackground
	}
	if cfg.Title == "" {
		cfg.Title = "folio"
	}
	defer page.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	g := &host{page: page, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	for _, c := range page.Components() {
		if cf, ok := c.(*CursorFollower); ok {
			g.cursor = cf
		}
	}
	Logger().Info("window opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(g)
}

// digitKeys jump to the first nine sections.
var digitKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// host adapts a Page to ebiten.Game.
type host struct {
	page   *Page
	cfg    RunConfig
	fps    *fpsOverlay
	cursor *CursorFollower

	layoutW, layoutH int
	inside           bool
	lastX, lastY     int
}

func (g *host) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	// Injected input takes precedence over real input.
	if g.page.PendingInput() == 0 {
		g.pollInput()
	}
	if err := g.page.Update(dt); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(dt.Seconds(), g.page)
	}
	return nil
}

func (g *host) pollInput() {
	vp := g.page.Viewport()

	dy := 0.0
	if _, wy := ebiten.Wheel(); wy != 0 {
		dy -= wy * g.cfg.WheelStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		dy += g.cfg.WheelStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		dy -= g.cfg.WheelStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		dy += vp.Height()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		dy -= vp.Height()
	}
	if dy != 0 {
		g.page.scrollTween = nil
		vp.ScrollBy(dy)
	}

	scenes := g.page.Scenes()
	for i := 0; i < len(scenes) && i < len(digitKeys); i++ {
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			_ = g.page.ScrollToAnchor(scenes[i].ID(), g.cfg.AnchorDuration, nil)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.page.ScrollTo(0, g.cfg.AnchorDuration, nil)
	}

	mx, my := ebiten.CursorPosition()
	w, h := vp.Size()
	inside := mx >= 0 && my >= 0 && float64(mx) < w && float64(my) < h
	switch {
	case inside && (!g.inside || mx != g.lastX || my != g.lastY):
		vp.MovePointer(float64(mx), float64(my))
	case !inside && g.inside:
		vp.LeavePointer()
	}
	g.inside, g.lastX, g.lastY = inside, mx, my

	if g.cursor != nil {
		g.cursor.SetHover(g.hoverAt(float64(mx), float64(my)+vp.ScrollY()))
	}
}

// hoverAt classifies the document point (x, y).
func (g *host) hoverAt(x, y float64) HoverKind {
	if !g.inside {
		return HoverNone
	}
	for _, c := range g.page.Components() {
		if card, ok := c.(*TiltCard); ok {
			if r, ok := card.Element().Bounds(); ok && r.Contains(x, y) {
				return HoverProject
			}
		}
	}
	return HoverNone
}

func (g *host) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.layoutW || outsideH != g.layoutH {
		g.layoutW, g.layoutH = outsideW, outsideH
		g.page.Viewport().Resize(float64(outsideW), float64(outsideH))
	}
	return outsideW, outsideH
}

func (g *host) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background.rgba(1))
	vp := g.page.Viewport()
	view := vp.Visible()

	for i, s := range g.page.Scenes() {
		g.drawScene(screen, s, sectionTints[i%len(sectionTints)], view)
	}
	g.drawShapes(screen, view)
	for _, c := range g.page.Components() {
		switch c := c.(type) {
		case *Parallax:
			drawParallax(screen, c, view)
		case *LabeledCounter:
			drawCounter(screen, c, view)
		case *TiltCard:
			drawCard(screen, c, view)
		case *Reveal:
			drawReveal(screen, c, view)
		case *ScrollFade:
			drawFade(screen, c, g.cfg.Background, view)
		}
	}
	drawNav(screen, g.page, view)
	if g.cursor != nil && g.cursor.Visible() {
		drawCursor(screen, g.cursor)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.page.flushScreenshots(screen)
}

func (g *host) drawScene(screen *ebiten.Image, s *Scene, tint Color, view Rect) {
	r, ok := s.Element().Bounds()
	if !ok || !r.Intersects(view) {
		return
	}
	st := s.Style()
	r.Y -= view.Y

	if sp, ok := s.Spotlight(); ok {
		drawSpotlight(screen, sp, r, st.Opacity)
	}

	// Scale about the section center.
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	w, h := r.Width*st.Scale, r.Height*st.Scale
	vector.DrawFilledRect(screen, float32(cx-w/2), float32(cy-h/2), float32(w), float32(h), tint.rgba(st.Opacity*0.6), true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%s  progress %.2f  opacity %.2f  scale %.3f",
		s.ID(), s.Progress(), st.Opacity, st.Scale), int(cx-w/2)+12, int(cy-h/2)+12)
}

// spotlightRings is the number of concentric circles used to approximate
// the radial gradient.
const spotlightRings = 8

func drawSpotlight(screen *ebiten.Image, sp Spotlight, r Rect, opacity float64) {
	c := sp.Center(r)
	radius := sp.Radius
	if radius.X <= 0 || radius.Y <= 0 {
		radius = DefaultSpotlightRadius
	}
	maxR := math.Max(radius.X*r.Width, radius.Y*r.Height)
	for i := spotlightRings; i >= 1; i-- {
		f := float64(i) / spotlightRings
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(maxR*f),
			sp.Color.rgba(opacity*0.12*(1-f+1.0/spotlightRings)), true)
	}
}

func (g *host) drawShapes(screen *ebiten.Image, view Rect) {
	now := g.page.Clock()
	container := Rect{Width: view.Width, Height: view.Height}
	for _, sh := range g.page.FloatingShapes() {
		pos := sh.Position(container, now)
		smp := sh.Sample(now)
		clr := paletteColors[sh.Color].rgba(0.35)
		size := sh.Size.Pixels() * smp.Scale
		drawShape(screen, sh.Kind, pos, size, smp.Rotation, clr)
	}
}

func drawShape(screen *ebiten.Image, kind ShapeKind, at Vec2, size, rotation float64, clr color.Color) {
	x, y, half := float32(at.X), float32(at.Y), float32(size/2)
	switch kind {
	case ShapeOrb:
		vector.DrawFilledCircle(screen, x, y, half, clr, true)
	case ShapeRing:
		vector.StrokeCircle(screen, x, y, half, 2, clr, true)
	case ShapeSquare:
		drawPolygon(screen, at, size/2, 4, rotation+45, clr)
	case ShapeTriangle:
		drawPolygon(screen, at, size/2, 3, rotation-90, clr)
	case ShapeDiamond:
		drawPolygon(screen, at, size/2, 4, rotation, clr)
	case ShapeHexagon:
		drawPolygon(screen, at, size/2, 6, rotation, clr)
	}
}

// drawPolygon strokes a regular polygon with n vertices.
func drawPolygon(screen *ebiten.Image, c Vec2, radius float64, n int, rotation float64, clr color.Color) {
	rot := rotation * math.Pi / 180
	vertex := func(i int) (float32, float32) {
		a := rot + float64(i)*2*math.Pi/float64(n)
		return float32(c.X + math.Cos(a)*radius), float32(c.Y + math.Sin(a)*radius)
	}
	for i := 0; i < n; i++ {
		x0, y0 := vertex(i)
		x1, y1 := vertex(i + 1)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
}

func drawParallax(screen *ebiten.Image, p *Parallax, view Rect) {
	r, ok := p.Element().Bounds()
	if !ok || !r.Intersects(view) {
		return
	}
	off := p.Offset()
	y := float32(r.Y - view.Y + r.Height*0.75 + off.Y)
	x := float32(r.X + r.Width*0.1 + off.X)
	vector.DrawFilledRect(screen, x, y, float32(r.Width*0.8), 2, ColorWhite.rgba(0.15), true)
}

func drawCounter(screen *ebiten.Image, c *LabeledCounter, view Rect) {
	r, ok := c.Element().Bounds()
	if !ok || !r.Intersects(view) {
		return
	}
	x, y := float32(r.X), float32(r.Y-view.Y)
	w, h := float32(r.Width), float32(r.Height)
	vector.DrawFilledRect(screen, x, y+h-6, w, 6, ColorWhite.rgba(0.1), true)
	vector.DrawFilledRect(screen, x, y+h-6, w*float32(clamp01(c.Value()/100)), 6, paletteColors["primary"].rgba(1), true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d%%", c.Label, c.Display()), int(x), int(y))
}

func drawCard(screen *ebiten.Image, c *TiltCard, view Rect) {
	r, ok := c.Element().Bounds()
	if !ok || !r.Intersects(view) {
		return
	}
	// Rotations are shown as a shift of the card face toward the pointer.
	dx, dy := c.RotateY()*1.5, -c.RotateX()*1.5
	x, y := float32(r.X+dx), float32(r.Y-view.Y+dy)
	alpha := 0.25
	if c.Hovered() {
		alpha = 0.4
	}
	vector.DrawFilledRect(screen, x, y, float32(r.Width), float32(r.Height), ColorWhite.rgba(alpha*0.3), true)
	vector.StrokeRect(screen, x, y, float32(r.Width), float32(r.Height), 1, ColorWhite.rgba(alpha), true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("rx %.1f ry %.1f", c.RotateX(), c.RotateY()), int(x)+8, int(y)+8)
}

func drawReveal(screen *ebiten.Image, rv *Reveal, view Rect) {
	r, ok := rv.Element().Bounds()
	if !ok || !r.Intersects(view) || rv.Len() == 0 {
		return
	}
	rowH := r.Height / float64(rv.Len())
	for i := 0; i < rv.Len(); i++ {
		st := rv.Style(i)
		// Rows shrink in width toward the bottom like lines of a paragraph.
		w := r.Width * (1 - 0.15*float64(i)) * st.Scale
		h := rowH * 0.5 * st.Scale
		x := r.X + st.X
		y := r.Y - view.Y + float64(i)*rowH + st.Y
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), ColorWhite.rgba(st.Opacity*0.5), true)
	}
}

// drawFade veils the section with the page background as its opacity drops.
func drawFade(screen *ebiten.Image, f *ScrollFade, bg Color, view Rect) {
	r, ok := f.Element().Bounds()
	if !ok || !r.Intersects(view) {
		return
	}
	if veil := 1 - f.Opacity(); veil > 0 {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y-view.Y), float32(r.Width), float32(r.Height), bg.rgba(veil), true)
	}
}

const navHeight = 40

// drawNav draws the section bar with the active section highlighted. The bar
// gains a backdrop once the page is scrolled.
func drawNav(screen *ebiten.Image, p *Page, view Rect) {
	if p.Scrolled() {
		vector.DrawFilledRect(screen, 0, 0, float32(view.Width), navHeight, DefaultBackground.rgba(0.85), true)
	}
	active, _ := p.ActiveSection()
	x := 16
	for i, s := range p.Scenes() {
		label := fmt.Sprintf("%d %s", i+1, s.ID())
		ebitenutil.DebugPrintAt(screen, label, x, 12)
		if s.ID() == active {
			vector.DrawFilledRect(screen, float32(x), 30, float32(len(label)*6), 2, paletteColors["primary"].rgba(1), true)
		}
		x += len(label)*6 + 24
	}
}

func drawCursor(screen *ebiten.Image, c *CursorFollower) {
	cfg := c.Config()
	ring, dot := c.Ring(), c.Dot()
	radius := cfg.RingSize / 2
	if c.Hovering() {
		radius *= 2
	}
	vector.StrokeCircle(screen, float32(ring.X), float32(ring.Y), float32(radius), 1.5, ColorWhite.rgba(0.8), true)
	vector.DrawFilledCircle(screen, float32(dot.X), float32(dot.Y), float32(cfg.DotSize/2), ColorWhite.rgba(1), true)
	if label := c.Label(); label != "" {
		ebitenutil.DebugPrintAt(screen, label, int(ring.X)-len(label)*3, int(ring.Y)-8)
	}
}

// rgba converts c to an 8-bit premultiplied color with its alpha scaled by
// alpha.
func (c Color) rgba(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
