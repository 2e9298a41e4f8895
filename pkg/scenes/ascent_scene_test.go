package scenes

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/hajimehoshi/ebiten/v2"
)

const frameStep = 1.0 / 60

// countingRenderer 记录提交的帧
type countingRenderer struct {
	frames        int
	width, height int
}

func (r *countingRenderer) RenderFrame(width, height int) {
	r.frames++
	r.width, r.height = width, height
}

type sceneHarness struct {
	scene     *AscentScene
	sched     *game.FrameScheduler
	renderer  *countingRenderer
	completes int
}

func newSceneHarness(t *testing.T) *sceneHarness {
	t.Helper()
	h := &sceneHarness{
		sched:    game.NewFrameScheduler(0),
		renderer: &countingRenderer{},
	}
	h.scene = NewAscentScene(AscentDeps{
		Scheduler: h.sched,
		Random:    rng.NewPCG(42),
		Renderer:  h.renderer,
	}, func() { h.completes++ })
	t.Cleanup(h.scene.Dispose)
	return h
}

func (h *sceneHarness) step() {
	h.sched.Advance(h.sched.Now() + frameStep)
}

// climb 按住 W 直到登顶，返回登顶时刻
func (h *sceneHarness) climb(t *testing.T) float64 {
	t.Helper()
	for !h.scene.Player().HasWon {
		if !h.scene.HandleKey(ebiten.KeyW) {
			t.Fatalf("move up rejected at index %d", h.scene.Player().CurrentIndex)
		}
		for frame := 0; h.scene.Player().Moving; frame++ {
			if frame > 600 {
				t.Fatalf("player did not arrive at index %d", h.scene.Player().CurrentIndex)
			}
			h.step()
		}
	}
	return h.sched.Now()
}

func TestAscentSceneSubmitsOneFramePerTick(t *testing.T) {
	h := newSceneHarness(t)
	for i := 0; i < 10; i++ {
		h.step()
	}
	if h.renderer.frames != 10 {
		t.Errorf("frames: got %d, want 10", h.renderer.frames)
	}
	if h.sched.PendingFrames() != 1 {
		t.Errorf("pending frames: got %d, want 1", h.sched.PendingFrames())
	}
}

func TestAscentSceneIgnoresInputBeforeStart(t *testing.T) {
	h := newSceneHarness(t)
	if h.scene.IsStarted() {
		t.Fatal("scene started without interaction")
	}
	if h.scene.HandleKey(ebiten.KeyW) {
		t.Error("HandleKey before Start: got true, want false")
	}
	h.step()
	if p := h.scene.Player(); p.Moving || p.CurrentIndex != 0 {
		t.Errorf("player moved before Start: index %d moving %v", p.CurrentIndex, p.Moving)
	}

	h.scene.Start()
	if !h.scene.HandleKey(ebiten.KeyArrowUp) {
		t.Error("HandleKey after Start: got false, want true")
	}
	if h.scene.HandleKey(ebiten.KeyW) {
		t.Error("second move while moving: got true, want false")
	}
	if got := h.scene.Player().State(); got != components.PlayerMoving {
		t.Errorf("state: got %v, want %v", got, components.PlayerMoving)
	}
}

func TestAscentScenePauseDisablesInput(t *testing.T) {
	h := newSceneHarness(t)
	h.scene.Start()
	h.scene.Pause()
	if h.scene.IsStarted() {
		t.Error("IsStarted after Pause: got true, want false")
	}
	if h.scene.HandleKey(ebiten.KeyW) {
		t.Error("HandleKey while paused: got true, want false")
	}
	if got := h.scene.overlayState(); !got.ShowStart || !got.Resumed {
		t.Errorf("overlay after pause: got ShowStart=%v Resumed=%v, want true true", got.ShowStart, got.Resumed)
	}
}

func TestAscentSceneStoryFadesInAfterDelay(t *testing.T) {
	h := newSceneHarness(t)
	if h.scene.StoryVisible() {
		t.Error("story visible at mount")
	}
	if !h.scene.ControlsHintVisible() {
		t.Error("controls hint hidden at mount")
	}
	if h.scene.StoryText() == "" {
		t.Error("intro text is empty")
	}

	for h.sched.Now() < 0.9 {
		h.step()
	}
	if h.scene.StoryVisible() {
		t.Errorf("story visible at t=%.2f, want hidden until 1s", h.sched.Now())
	}
	for h.sched.Now() < 1.5 {
		h.step()
	}
	if !h.scene.StoryVisible() {
		t.Error("story hidden after 1.5s")
	}
	if op := h.scene.StoryOpacity(); op <= 0 || op >= 1 {
		t.Errorf("story opacity mid-fade: got %v, want (0,1)", op)
	}
}

func TestAscentSceneCompletesOnceAfterSummit(t *testing.T) {
	h := newSceneHarness(t)
	h.scene.Start()
	wonAt := h.climb(t)

	if h.scene.StoryVisible() || h.scene.ControlsHintVisible() {
		t.Error("story and controls should hide on summit")
	}
	if h.scene.HandleKey(ebiten.KeyS) {
		t.Error("move down after win: got true, want false")
	}

	for h.sched.Now() < wonAt+1.9 {
		h.step()
		if h.completes != 0 {
			t.Fatalf("onComplete fired early at +%.3fs", h.sched.Now()-wonAt)
		}
	}
	for h.sched.Now() < wonAt+2.1 {
		h.step()
	}
	if h.completes != 1 {
		t.Fatalf("onComplete calls at +2.1s: got %d, want 1", h.completes)
	}
	for i := 0; i < 120; i++ {
		h.step()
	}
	if h.completes != 1 {
		t.Errorf("onComplete calls: got %d, want 1", h.completes)
	}
	if p := h.scene.Player(); p.CurrentIndex != h.scene.PlatformCount()-1 {
		t.Errorf("final index: got %d, want %d", p.CurrentIndex, h.scene.PlatformCount()-1)
	}
	if got := h.scene.SunriseProgress(); got != 1 {
		t.Errorf("sunrise at summit: got %v, want 1", got)
	}
}

func TestAscentSceneDisposeCancelsCallbacks(t *testing.T) {
	h := newSceneHarness(t)
	h.scene.Start()
	h.climb(t)

	h.scene.Dispose()
	if h.sched.PendingFrames() != 0 {
		t.Errorf("pending frames after Dispose: got %d, want 0", h.sched.PendingFrames())
	}
	if h.sched.PendingTimers() != 0 {
		t.Errorf("pending timers after Dispose: got %d, want 0", h.sched.PendingTimers())
	}

	frames := h.renderer.frames
	for i := 0; i < 300; i++ {
		h.step()
	}
	if h.renderer.frames != frames {
		t.Errorf("frames after Dispose: got %d, want %d", h.renderer.frames, frames)
	}
	if h.completes != 0 {
		t.Errorf("onComplete after Dispose: got %d calls, want 0", h.completes)
	}
	if h.scene.Player() != nil {
		t.Error("Player after Dispose: want nil")
	}
	if !h.scene.renderSystem.IsDisposed() {
		t.Error("render system after Dispose: want released")
	}

	// 重复释放不应出错
	h.scene.Dispose()
}

func TestAscentSceneResize(t *testing.T) {
	h := newSceneHarness(t)
	h.scene.Resize(800, 600)
	h.step()
	if h.renderer.width != 800 || h.renderer.height != 600 {
		t.Errorf("viewport: got %dx%d, want 800x600", h.renderer.width, h.renderer.height)
	}
	cam := h.scene.cameraSystem.Camera()
	if got, want := cam.Aspect, 800.0/600.0; got != want {
		t.Errorf("aspect: got %v, want %v", got, want)
	}

	h.scene.Resize(0, 600)
	if got, want := cam.Aspect, 800.0/600.0; got != want {
		t.Errorf("aspect after empty resize: got %v, want %v", got, want)
	}

	h.scene.Dispose()
	h.scene.Resize(320, 200)
	if h.scene.width != 800 || h.scene.height != 600 {
		t.Errorf("resize after Dispose changed viewport to %dx%d", h.scene.width, h.scene.height)
	}
}

func TestAscentSceneSameSeedSameMountain(t *testing.T) {
	a := newSceneHarness(t)
	b := newSceneHarness(t)
	if a.scene.PlatformCount() != b.scene.PlatformCount() {
		t.Fatalf("platform count: got %d and %d", a.scene.PlatformCount(), b.scene.PlatformCount())
	}
	for i := range a.scene.scene.Platforms {
		if a.scene.scene.Platforms[i] != b.scene.scene.Platforms[i] {
			t.Errorf("platform %d differs: %v vs %v", i, a.scene.scene.Platforms[i], b.scene.scene.Platforms[i])
		}
	}
}

// TestAscentSceneReplayIsReproducible 重玩时的地形只取决于种子与会话次数，与上一局进行了多久无关
func TestAscentSceneReplayIsReproducible(t *testing.T) {
	replay := func(frames int) *AscentScene {
		sched := game.NewFrameScheduler(0)
		src := rng.NewPCG(42)
		deps := AscentDeps{Scheduler: sched, Random: src, Renderer: &countingRenderer{}, Seed: 42}

		first := NewAscentScene(deps, nil)
		first.Start()
		for i := 0; i < frames; i++ {
			if i%30 == 0 {
				first.HandleKey(ebiten.KeyW)
			}
			sched.Advance(sched.Now() + frameStep)
		}
		first.Dispose()

		deps.Session = 2
		second := NewAscentScene(deps, nil)
		t.Cleanup(second.Dispose)
		return second
	}

	a := replay(10)
	b := replay(400)
	if a.PlatformCount() != b.PlatformCount() {
		t.Fatalf("platform count: got %d and %d", a.PlatformCount(), b.PlatformCount())
	}
	for i := range a.scene.Platforms {
		if a.scene.Platforms[i] != b.scene.Platforms[i] {
			t.Errorf("replayed platform %d differs: %v vs %v", i, a.scene.Platforms[i], b.scene.Platforms[i])
		}
	}
	if report := a.DebugReport(); !strings.Contains(report, "seed: 42 session: 2") {
		t.Errorf("DebugReport should name the session, got:\n%s", report)
	}
}

func TestSummitSceneReplaysOnce(t *testing.T) {
	calls := 0
	s := NewSummitScene(game.NewResourceManager(nil), color.RGBA{0xff, 0xa0, 0x7a, 0xff}, func() { calls++ })
	s.Replay()
	s.Replay()
	if calls != 1 {
		t.Errorf("replay calls: got %d, want 1", calls)
	}
}

func TestSummitSceneFadesIn(t *testing.T) {
	s := NewSummitScene(game.NewResourceManager(nil), color.Black, nil)
	if s.TitleAlpha() != 0 || s.PromptAlpha() != 0 {
		t.Errorf("alpha at start: got title %v prompt %v, want 0 0", s.TitleAlpha(), s.PromptAlpha())
	}
	s.elapsed = 0.5
	if a := s.TitleAlpha(); a <= 0.5 || a >= 1 {
		t.Errorf("title alpha at 0.5s: got %v, want (0.5, 1)", a)
	}
	if a := s.PromptAlpha(); a != 0 {
		t.Errorf("prompt alpha at 0.5s: got %v, want 0", a)
	}
	s.elapsed = 2
	if s.TitleAlpha() != 1 || s.PromptAlpha() != 1 {
		t.Errorf("alpha at 2s: got title %v prompt %v, want 1 1", s.TitleAlpha(), s.PromptAlpha())
	}
}
