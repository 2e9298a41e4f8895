package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/entities"
	"github.com/gonewx/ascent/pkg/rng"
)

func newRenderScene(t *testing.T) (*ecs.EntityManager, entities.SceneEntities, *config.AscentConfig) {
	t.Helper()
	cfg := config.DefaultAscentConfig()
	em := ecs.NewEntityManager()
	scene := entities.PopulateScene(em, cfg, rng.NewPCG(7), 16.0/9)
	NewSunriseSystem(em, scene.Player, scene.Environment, scene.Sun, cfg.Lighting).Update()
	return em, scene, cfg
}

// TestRenderFramePreparesSortedTriangles 三角形按深度从远到近排列
func TestRenderFramePreparesSortedTriangles(t *testing.T) {
	em, _, cfg := newRenderScene(t)
	rain := true
	s := NewRenderSystem(em, func() bool { return rain })

	s.RenderFrame(1280, 720)
	withRain := s.TriangleCount()
	if withRain == 0 {
		t.Fatal("expected triangles for the default scene")
	}
	for i := 1; i < len(s.triangles); i++ {
		if s.triangles[i].depth > s.triangles[i-1].depth {
			t.Fatalf("triangle %d is farther than its predecessor", i)
		}
	}
	if got, want := s.SkyColor(), toRGBA(cfg.Lighting.Day.Sky.Vec(), 1); got != want {
		t.Errorf("SkyColor: got %v, want %v", got, want)
	}

	rain = false
	s.RenderFrame(1280, 720)
	if s.TriangleCount() >= withRain {
		t.Errorf("disabling rain should drop triangles: %d -> %d", withRain, s.TriangleCount())
	}
}

func TestRenderFrameEmptyViewport(t *testing.T) {
	em, _, _ := newRenderScene(t)
	s := NewRenderSystem(em, nil)

	s.RenderFrame(1280, 720)
	s.RenderFrame(0, 720)
	if s.TriangleCount() != 0 {
		t.Errorf("empty viewport: got %d triangles, want 0", s.TriangleCount())
	}

	empty := NewRenderSystem(ecs.NewEntityManager(), nil)
	empty.RenderFrame(1280, 720)
	if empty.TriangleCount() != 0 {
		t.Error("a scene without camera should render nothing")
	}
}

// TestRenderSystemDispose 释放后不再准备三角形，重复释放安全
func TestRenderSystemDispose(t *testing.T) {
	em, _, _ := newRenderScene(t)
	s := NewRenderSystem(em, nil)
	s.RenderFrame(1280, 720)
	if s.TriangleCount() == 0 {
		t.Fatal("expected triangles before Dispose")
	}

	s.Dispose()
	if !s.IsDisposed() {
		t.Error("IsDisposed: got false, want true")
	}
	if s.whiteBase != nil || s.whiteImage != nil {
		t.Error("texture should be released after Dispose")
	}
	s.RenderFrame(1280, 720)
	if s.TriangleCount() != 0 {
		t.Errorf("RenderFrame after Dispose: got %d triangles, want 0", s.TriangleCount())
	}
	s.Dispose()
}

// TestRenderSkipsHiddenMeshes 不可见或完全透明的网格不产生三角形
func TestRenderSkipsHiddenMeshes(t *testing.T) {
	em, _, _ := newRenderScene(t)
	s := NewRenderSystem(em, func() bool { return false })
	s.RenderFrame(1280, 720)
	before := s.TriangleCount()

	for _, id := range ecs.GetEntitiesWith1[*components.MeshComponent](em) {
		mc, _ := ecs.GetComponent[*components.MeshComponent](em, id)
		mc.Visible = false
	}
	s.RenderFrame(1280, 720)
	if before == 0 || s.TriangleCount() != 0 {
		t.Errorf("hidden meshes: before=%d after=%d, want >0 then 0", before, s.TriangleCount())
	}
}

func TestShadeAndFog(t *testing.T) {
	env := &components.EnvironmentComponent{
		Fog:              mgl64.Vec3{1, 0, 0},
		FogNear:          20,
		FogFar:           70,
		LightDirection:   mgl64.Vec3{0, 1, 0},
		LightColor:       mgl64.Vec3{1, 1, 1},
		LightIntensity:   1,
		AmbientIntensity: 0,
	}
	white := mgl64.Vec3{1, 1, 1}

	lit := shade(white, mgl64.Vec3{0, 1, 0}, env)
	dark := shade(white, mgl64.Vec3{0, -1, 0}, env)
	if lit.X() <= dark.X() {
		t.Errorf("a face toward the light should be brighter: lit=%v dark=%v", lit, dark)
	}
	if dark != (mgl64.Vec3{}) {
		t.Errorf("no ambient and no hemisphere: got %v, want black", dark)
	}

	c := mgl64.Vec3{0, 1, 0}
	if got := applyFog(c, 10, env); got != c {
		t.Errorf("before fog near: got %v, want %v", got, c)
	}
	if got := applyFog(c, 100, env); got != env.Fog {
		t.Errorf("beyond fog far: got %v, want %v", got, env.Fog)
	}
	if got := applyFog(c, 45, env); !vecApprox(got, mgl64.Vec3{0.5, 0.5, 0}, 1e-9) {
		t.Errorf("halfway: got %v, want (0.5,0.5,0)", got)
	}
}

// TestFaceNormalFacesCamera 法线总是朝向相机一侧
func TestFaceNormalFacesCamera(t *testing.T) {
	tri := [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}
	center := mgl64.Vec3{1.0 / 3, 0, 1.0 / 3}

	up := faceNormal(tri, mgl64.Vec3{0, 10, 0}, center)
	down := faceNormal(tri, mgl64.Vec3{0, -10, 0}, center)
	if up.Y() != 1 || down.Y() != -1 {
		t.Errorf("normals: got up=%v down=%v", up, down)
	}

	degenerate := [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	if got := faceNormal(degenerate, mgl64.Vec3{}, mgl64.Vec3{}); got != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("degenerate normal: got %v", got)
	}
}

func TestWorldMatrixHierarchy(t *testing.T) {
	em := ecs.NewEntityManager()
	parent := em.CreateEntity()
	pt := components.NewTransform(mgl64.Vec3{10, 0, 0})
	ecs.AddComponent(em, parent, pt)
	child := em.CreateEntity()
	ct := components.NewTransform(mgl64.Vec3{0, 1, 0})
	ct.Parent = parent
	ecs.AddComponent(em, child, ct)

	s := NewRenderSystem(em, nil)
	got := s.worldMatrix(child, 0).Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	if !vecApprox(got, mgl64.Vec3{10, 1, 0}, 1e-12) {
		t.Errorf("child origin: got %v, want (10,1,0)", got)
	}

	// 自引用不会无限递归
	pt.Parent = parent
	clear(s.world)
	s.worldMatrix(parent, 0)
}
