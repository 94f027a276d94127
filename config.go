package folio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a page: viewport, sections in document order and the
// secondary effects.
type Config struct {
	Viewport      ViewportConfig  `yaml:"viewport"`
	ReducedMotion bool            `yaml:"reducedMotion"`
	Seed          uint64          `yaml:"seed"`
	Floating      FloatingConfig  `yaml:"floating"`
	Cursor        bool            `yaml:"cursor"`
	Sections      []SectionConfig `yaml:"sections"`
}

// ViewportConfig is the initial window size.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FloatingConfig selects the decorative shape density. Disabled omits the
// shapes entirely.
type FloatingConfig struct {
	Density  string `yaml:"density"`
	Disabled bool   `yaml:"disabled"`
}

// SectionConfig is one scroll-linked section.
type SectionConfig struct {
	ID string `yaml:"id"`
	// Height defaults to the viewport height.
	Height float64 `yaml:"height"`
	// Offset is a pair of "<target> <container>" intersections.
	Offset []string `yaml:"offset"`
	// Spring names a preset; empty uses "smooth".
	Spring   string          `yaml:"spring"`
	Glow     *GlowConfig     `yaml:"glow"`
	Parallax float64         `yaml:"parallax"`
	Bindings []BindingConfig `yaml:"bindings"`
	Counters []CounterEntry  `yaml:"counters"`
	Cards    int             `yaml:"cards"`
	Reveal   *RevealEntry    `yaml:"reveal"`
	// Fade is "in" to fade the section in as it enters, or "out" to fade it
	// as it leaves through the top.
	Fade string `yaml:"fade"`
}

// GlowConfig is a section spotlight.
type GlowConfig struct {
	Color    string `yaml:"color"`
	Position string `yaml:"position"`
}

// BindingConfig is a named progress-driven value.
type BindingConfig struct {
	Name   string    `yaml:"name"`
	Input  []float64 `yaml:"input"`
	Output []float64 `yaml:"output"`
	Smooth bool      `yaml:"smooth"`
}

// CounterEntry is a skill-style counter placed in a section.
type CounterEntry struct {
	Label  string  `yaml:"label"`
	Target float64 `yaml:"target"`
	// Ease names a preset; empty uses cubic ease-out.
	Ease string `yaml:"ease"`
}

// RevealEntry is a staggered reveal of Count rows at the bottom of a
// section, played once when the rows scroll into view.
type RevealEntry struct {
	// Variant is "fadeUp", "scaleIn" or "slideIn"; empty uses "fadeUp".
	Variant string `yaml:"variant"`
	// Direction applies to slideIn; empty uses "left".
	Direction string `yaml:"direction"`
	// Count defaults to 1.
	Count int `yaml:"count"`
	// Stagger defaults to DefaultStagger.
	Stagger time.Duration `yaml:"stagger"`
	Margin  float64       `yaml:"margin"`
	// Distance is the travel in pixels; zero uses 40 for fadeUp and 60 for
	// slideIn.
	Distance float64 `yaml:"distance"`
}

// revealRowHeight is the vertical space per reveal row.
const revealRowHeight = 32

func (r RevealEntry) variants() ([]Variant, error) {
	if r.Count < 0 {
		return nil, fmt.Errorf("count must be >= 0, got %d", r.Count)
	}
	if r.Stagger < 0 {
		return nil, fmt.Errorf("stagger must be >= 0, got %s", r.Stagger)
	}
	n := r.Count
	if n == 0 {
		n = 1
	}
	var v Variant
	switch r.Variant {
	case "", "fadeUp":
		d := r.Distance
		if d == 0 {
			d = 40
		}
		v = FadeUp(0, d)
	case "scaleIn":
		v = ScaleIn(0)
	case "slideIn":
		dir := FromLeft
		if r.Direction != "" {
			var err error
			if dir, err = ParseDirection(r.Direction); err != nil {
				return nil, err
			}
		}
		d := r.Distance
		if d == 0 {
			d = 60
		}
		v = SlideIn(dir, 0, d)
	default:
		return nil, fmt.Errorf("unknown variant %q", r.Variant)
	}
	out := make([]Variant, n)
	for i := range out {
		out[i] = v
	}
	return out, nil
}

// DefaultConfig is used for fields the file leaves empty.
var DefaultConfig = Config{
	Viewport: ViewportConfig{Width: 1280, Height: 800},
	Seed:     1,
	Cursor:   true,
}

// LoadConfig reads and validates a YAML page config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	Logger().Info("page config loaded", "path", path, "sections", len(cfg.Sections))
	return cfg, nil
}

// ParseConfig parses and validates a YAML page config.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse page config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the config for errors Build would otherwise report late.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("sections cannot be empty")
	}
	if _, err := ParseDensity(c.Floating.Density); err != nil {
		return fmt.Errorf("floating.density: %w", err)
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("sections[%d]: %w", i, ErrMissingID)
		}
		if seen[id] {
			return fmt.Errorf("sections[%d]: %q: %w", i, id, ErrDuplicateScene)
		}
		seen[id] = true
		if s.Height < 0 {
			return fmt.Errorf("section %q: height must be >= 0, got %g", id, s.Height)
		}
		if s.Cards < 0 {
			return fmt.Errorf("section %q: cards must be >= 0, got %d", id, s.Cards)
		}
		if _, err := s.offset(); err != nil {
			return fmt.Errorf("section %q: %w", id, err)
		}
		if s.Spring != "" {
			if _, ok := LookupSpring(s.Spring); !ok {
				return fmt.Errorf("section %q: unknown spring preset %q", id, s.Spring)
			}
		}
		if s.Glow != nil {
			if _, err := s.Glow.spotlight(); err != nil {
				return fmt.Errorf("section %q: glow: %w", id, err)
			}
		}
		for _, b := range s.Bindings {
			if b.Name == "" {
				return fmt.Errorf("section %q: binding name cannot be empty", id)
			}
			if _, err := NewTable(b.Input, b.Output); err != nil {
				return fmt.Errorf("section %q: binding %q: %w", id, b.Name, err)
			}
		}
		if s.Reveal != nil {
			if _, err := s.Reveal.variants(); err != nil {
				return fmt.Errorf("section %q: reveal: %w", id, err)
			}
		}
		switch s.Fade {
		case "", "in", "out":
		default:
			return fmt.Errorf("section %q: fade must be \"in\" or \"out\", got %q", id, s.Fade)
		}
		for _, ce := range s.Counters {
			if ce.Ease != "" {
				if _, ok := LookupEase(ce.Ease); !ok {
					return fmt.Errorf("section %q: counter %q: unknown ease preset %q", id, ce.Label, ce.Ease)
				}
			}
		}
	}
	return nil
}

func (s SectionConfig) offset() (ScrollOffset, error) {
	switch len(s.Offset) {
	case 0:
		return OffsetEnterExit, nil
	case 2:
		return ParseScrollOffset(s.Offset[0], s.Offset[1])
	}
	return ScrollOffset{}, fmt.Errorf("offset wants two intersections, got %d", len(s.Offset))
}

func (g GlowConfig) spotlight() (*Spotlight, error) {
	c, err := ParseHexColor(g.Color)
	if err != nil {
		return nil, err
	}
	pos := g.Position
	if pos == "" {
		pos = "50% 0%"
	}
	at, err := ParseSpotlightPosition(pos)
	if err != nil {
		return nil, err
	}
	return &Spotlight{Color: c, At: at, Radius: DefaultSpotlightRadius}, nil
}

// counterRowHeight is the vertical space per counter row.
const counterRowHeight = 48

// Build lays the sections out top to bottom at the viewport width and
// returns a page with every scene and effect mounted.
func (c *Config) Build() (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page config: %w", err)
	}
	w, h := c.Viewport.Width, c.Viewport.Height
	page := NewPage(w, h)
	page.Viewport().SetReducedMotion(c.ReducedMotion)

	y := 0.0
	for i, sc := range c.Sections {
		height := sc.Height
		if height == 0 {
			height = h
		}
		bounds := Rect{X: 0, Y: y, Width: w, Height: height}
		if err := c.buildSection(page, sc, bounds, i == 0, i == len(c.Sections)-1); err != nil {
			page.Close()
			return nil, err
		}
		y += height
	}
	page.Viewport().SetContentHeight(y)

	if !c.Floating.Disabled {
		d, _ := ParseDensity(c.Floating.Density)
		page.SetFloatingShapes(Scatter(NewSeededRand(c.Seed), d))
	}
	if c.Cursor {
		if err := page.Add(NewCursorFollower(DefaultCursorConfig)); err != nil {
			page.Close()
			return nil, err
		}
	}
	return page, nil
}

func (c *Config) buildSection(page *Page, sc SectionConfig, bounds Rect, first, last bool) error {
	offset, _ := sc.offset()
	spring := SpringSmooth
	if sc.Spring != "" {
		spring, _ = LookupSpring(sc.Spring)
	}
	var spot *Spotlight
	if sc.Glow != nil {
		spot, _ = sc.Glow.spotlight()
	}
	scene, err := NewScene(SceneConfig{
		ID:        sc.ID,
		Element:   NewBlock(bounds),
		Offset:    offset,
		IsFirst:   first,
		IsLast:    last,
		Spotlight: spot,
		Spring:    spring,
	})
	if err != nil {
		return err
	}
	for _, b := range sc.Bindings {
		scene.Bind(b.Name, MustTable(b.Input, b.Output), b.Smooth)
	}
	if err := page.AddScene(scene); err != nil {
		return err
	}

	if sc.Parallax != 0 {
		px, err := NewParallax(scene.Element(), ParallaxConfig{Speed: sc.Parallax, Spring: spring})
		if err != nil {
			return err
		}
		if err := page.Add(px); err != nil {
			return err
		}
	}

	inner := bounds.Inset(bounds.Width * 0.1)
	for i, ce := range sc.Counters {
		row := Rect{X: inner.X, Y: inner.Y + float64(i)*counterRowHeight, Width: inner.Width, Height: counterRowHeight / 2}
		cc := CounterConfig{Target: ce.Target, Delay: time.Duration(i) * DefaultStagger}
		if ce.Ease != "" {
			e, _ := LookupEase(ce.Ease)
			cc.Ease = e.TweenFunc()
		}
		counter, err := NewCounter(NewBlock(row), cc)
		if err != nil {
			return err
		}
		if err := page.Add(&LabeledCounter{Label: ce.Label, Counter: counter}); err != nil {
			return err
		}
	}

	if sc.Fade != "" {
		fade, err := NewScrollFade(scene.Element(), sc.Fade == "in")
		if err != nil {
			return err
		}
		if err := page.Add(fade); err != nil {
			return err
		}
	}

	if sc.Reveal != nil {
		variants, _ := sc.Reveal.variants()
		stagger := sc.Reveal.Stagger
		if stagger == 0 {
			stagger = DefaultStagger
		}
		rows := float64(len(variants)) * revealRowHeight
		band := Rect{X: inner.X, Y: inner.Bottom() - rows, Width: inner.Width / 2, Height: rows}
		reveal, err := NewReveal(NewBlock(band), RevealConfig{Stagger: stagger, Margin: sc.Reveal.Margin}, variants...)
		if err != nil {
			return err
		}
		if err := page.Add(reveal); err != nil {
			return err
		}
	}

	if sc.Cards > 0 {
		const gap = 24
		cw := (inner.Width - gap*float64(sc.Cards-1)) / float64(sc.Cards)
		ch := inner.Height * 0.6
		for i := 0; i < sc.Cards; i++ {
			r := Rect{X: inner.X + float64(i)*(cw+gap), Y: inner.Y + (inner.Height-ch)/2, Width: cw, Height: ch}
			card, err := NewTiltCard(NewBlock(r), DefaultTiltDegrees, SpringTilt)
			if err != nil {
				return err
			}
			if err := page.Add(card); err != nil {
				return err
			}
		}
	}
	return nil
}

// LabeledCounter is a Counter with a display label, as built from config.
type LabeledCounter struct {
	Label string
	*Counter
}
