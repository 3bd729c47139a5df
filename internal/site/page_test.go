package site

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Faultbox/detailfx/internal/config"
	"github.com/Faultbox/detailfx/internal/engine/events"
	"github.com/Faultbox/detailfx/internal/engine/page"
	"github.com/Faultbox/detailfx/internal/engine/particles"
	"github.com/Faultbox/detailfx/internal/engine/reveal"
)

type pointsSurface struct{ released int }

func (s *pointsSurface) Resize(int, int, float64)     {}
func (s *pointsSurface) Render(particles.Frame) error { return nil }
func (s *pointsSurface) Release()                     { s.released++ }

type pathSurface struct {
	offset   float64
	released int
}

func (s *pathSurface) Resize(int, int, float64) {}
func (s *pathSurface) SetDash(_, offset float64) error {
	s.offset = offset
	return nil
}
func (s *pathSurface) Release() { s.released++ }

type fixture struct {
	points *pointsSurface
	path   *pathSurface
	page   *Page
}

func newFixture(t *testing.T, smooth bool, particleErr error) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Scroll.Smooth = smooth
	cfg.Particles.Seed = 7
	cfg.Page.Sections = []config.SectionConfig{
		{ID: "hero", Height: "100vh"},
		{ID: "services", Height: "1200px"},
		{ID: "booking", Height: "1000px"},
	}

	f := &fixture{points: &pointsSurface{}, path: &pathSurface{}}
	surfaces := Surfaces{
		Particles: func(*particles.Field, particles.Material) (particles.Surface, error) {
			if particleErr != nil {
				return nil, particleErr
			}
			return f.points, nil
		},
		Reveal: func(reveal.Style) reveal.SurfaceFactory {
			return func(*reveal.Path) (reveal.Surface, error) { return f.path, nil }
		},
	}
	p, err := New(cfg, page.Viewport{Width: 1280, Height: 800, PixelRatio: 1}, surfaces)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.page = p
	return f
}

func TestMountBothEffects(t *testing.T) {
	f := newFixture(t, false, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	layers := f.page.Layers()
	if len(layers) != 2 || layers[0] != f.points || layers[1] != f.path {
		t.Fatalf("layers = %v, want particles then path", layers)
	}
	if got := f.page.Reveal().Offset(); got != f.page.Reveal().Length() {
		t.Errorf("initial offset = %v, want hidden path", got)
	}
}

func TestNativeWheelScroll(t *testing.T) {
	f := newFixture(t, false, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatal(err)
	}
	// booking top = 800 + 1200 = 2000, totalDistance = 1200.
	for i := 0; i < 6; i++ {
		f.page.Dispatch(events.Event{Kind: events.Wheel, DeltaY: 100})
	}
	if got := f.page.Document().ScrollY(); got != 600 {
		t.Fatalf("ScrollY = %v, want 600", got)
	}
	want := f.page.Reveal().Length() / 2
	if math.Abs(f.path.offset-want) > 1e-9 {
		t.Errorf("path offset = %v, want %v", f.path.offset, want)
	}
	// Without a controller the particle field sees no scroll.
	f.page.Frame(time.Now())
	if got := f.page.Particles().Motion().PositionY; got != 0 {
		t.Errorf("PositionY = %v, want 0", got)
	}
}

func TestSmoothScrollFeedsParticles(t *testing.T) {
	f := newFixture(t, true, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatal(err)
	}
	f.page.Dispatch(events.Event{Kind: events.Wheel, DeltaY: 300})

	now := time.Now()
	for i := 0; i < 600 && f.page.Controller().Animating(); i++ {
		now = now.Add(time.Second / 60)
		f.page.Frame(now)
	}
	if f.page.Controller().Animating() {
		t.Fatal("spring did not settle")
	}
	if got := f.page.Document().ScrollY(); got != 300 {
		t.Fatalf("ScrollY = %v, want 300", got)
	}
	f.page.Frame(now.Add(time.Second / 60))
	if got := f.page.Particles().Motion().PositionY; math.Abs(got+0.6) > 1e-9 {
		t.Errorf("PositionY = %v, want -0.6", got)
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t, false, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatal(err)
	}
	doc := f.page.Document()

	tests := []struct {
		key  events.KeyCode
		want float64
	}{
		{events.KeyEnd, doc.MaxScroll()},
		{events.KeyHome, 0},
		{events.KeyDown, 40},
		{events.KeyPageDown, 40 + 720},
		{events.KeyUp, 720},
		{events.KeyPageUp, 0},
	}
	for _, tt := range tests {
		if !f.page.Dispatch(events.Event{Kind: events.Key, Key: tt.key}) {
			t.Fatalf("key %v asked to quit", tt.key)
		}
		if got := doc.ScrollY(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("after key %v ScrollY = %v, want %v", tt.key, got, tt.want)
		}
	}

	if f.page.Dispatch(events.Event{Kind: events.Key, Key: events.KeyEscape}) {
		t.Error("escape did not quit")
	}
	if f.page.Dispatch(events.Event{Kind: events.Quit}) {
		t.Error("quit event did not quit")
	}
}

func TestResizeRelayouts(t *testing.T) {
	f := newFixture(t, true, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatal(err)
	}
	f.page.Dispatch(events.Event{Kind: events.Resize, Width: 640, Height: 400, PixelRatio: 2})
	if vp := f.page.Document().Viewport(); vp.Height != 400 || vp.PixelRatio != 2 {
		t.Errorf("viewport = %+v", vp)
	}
	if top, _ := f.page.Document().Lookup("#booking"); top != 1600 {
		t.Errorf("booking top = %v, want 1600", top)
	}
	if got := f.page.Particles().Camera().Aspect; got != 1.6 {
		t.Errorf("aspect = %v, want 1.6", got)
	}
}

func TestUnmountReleasesEverything(t *testing.T) {
	f := newFixture(t, true, nil)
	if err := f.page.Mount(); err != nil {
		t.Fatal(err)
	}
	f.page.Unmount()
	f.page.Unmount()

	if n := len(f.page.Layers()); n != 0 {
		t.Errorf("layers left: %d", n)
	}
	if n := f.page.Events().Len(); n != 0 {
		t.Errorf("listeners left: %d", n)
	}
	if n := f.page.Controller().Subscribers(); n != 0 {
		t.Errorf("subscribers left: %d", n)
	}
	if f.points.released != 1 || f.path.released != 1 {
		t.Errorf("released points %d path %d, want 1 each", f.points.released, f.path.released)
	}
}

func TestParticleFailureKeepsReveal(t *testing.T) {
	boom := errors.New("no context")
	f := newFixture(t, false, boom)
	err := f.page.Mount()
	if !errors.Is(err, boom) {
		t.Fatalf("Mount err = %v, want %v", err, boom)
	}
	if f.page.Particles().Active() {
		t.Error("particles active after failure")
	}
	if !f.page.Reveal().Active() {
		t.Error("reveal not mounted")
	}
}

func TestDisabledEffects(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Enabled = false
	cfg.Reveal.Enabled = false
	p, err := New(cfg, page.Viewport{Width: 800, Height: 600}, Surfaces{})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Mount(); err != nil {
		t.Fatal(err)
	}
	if p.Particles() != nil || p.Reveal() != nil || len(p.Layers()) != 0 {
		t.Error("disabled effects were created")
	}
	p.Unmount()
}

func TestSectionsRejectsBadHeight(t *testing.T) {
	_, err := Sections([]config.SectionConfig{{ID: "x", Height: "tall"}})
	if err == nil {
		t.Error("expected error for malformed height")
	}
}

func TestRGB(t *testing.T) {
	if got := RGB("#ff0000"); got != [3]float32{1, 0, 0} {
		t.Errorf("RGB = %v", got)
	}
}

func TestParticleOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Seed = 42
	cfg.Scroll.Signal = "progress"
	opts := ParticleOptions(cfg)
	if opts.Count != 700 || opts.Spread != 15 || opts.Seed != 42 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Signal != particles.SignalProgress {
		t.Errorf("signal = %v, want progress", opts.Signal)
	}
	if opts.Material.Size != 0.05 || opts.Material.Opacity != 0.6 {
		t.Errorf("material = %+v", opts.Material)
	}
}
