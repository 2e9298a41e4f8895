package systems

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameRenderer 接收每一帧的渲染提交
// 帧回调在 Update 中提交，Ebitengine 的 Draw 再把准备好的帧画到屏幕上
type FrameRenderer interface {
	RenderFrame(width, height int)
}

const (
	// lightExposure 光照总和的缩放，使白天场景接近原色
	lightExposure = 0.45

	// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引，取 3 的倍数）
	maxBatchVertices = 65532

	// minDepth 相机近处裁剪，w 小于此值的顶点整片丢弃
	minDepth = 0.05
)

// projectedTriangle 投影后的屏幕空间三角形
type projectedTriangle struct {
	depth      float64
	x, y       [3]float32
	r, g, b, a float32
}

// RenderSystem 软件三维渲染
//
// 职责范围：
//   - 计算实体层级的世界矩阵
//   - 平面着色：方向光 + 半球光 + 环境光，线性雾
//   - 透视投影后按深度从远到近排序（画家算法），用 DrawTriangles 批量绘制
//   - 雨滴按透视缩放成屏幕空间小方块，与三角形一起排序
//
// 顶点与索引数组跨帧复用，避免每帧分配。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	world     map[ecs.EntityID]mgl64.Mat4
	triangles []projectedTriangle
	vertices  []ebiten.Vertex
	indices   []uint16
	sky       color.RGBA

	rainEnabled func() bool
	whiteBase   *ebiten.Image
	whiteImage  *ebiten.Image
	disposed    bool
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - rainEnabled: 是否绘制雨滴，可为 nil（总是绘制）
func NewRenderSystem(em *ecs.EntityManager, rainEnabled func() bool) *RenderSystem {
	if rainEnabled == nil {
		rainEnabled = func() bool { return true }
	}
	return &RenderSystem{
		entityManager: em,
		world:         make(map[ecs.EntityID]mgl64.Mat4),
		triangles:     make([]projectedTriangle, 0, 8192),
		vertices:      make([]ebiten.Vertex, 0, 8192*3),
		indices:       make([]uint16, 0, maxBatchVertices),
		rainEnabled:   rainEnabled,
	}
}

// TriangleCount 返回上一次 RenderFrame 准备的三角形数量
func (s *RenderSystem) TriangleCount() int {
	return len(s.triangles)
}

// SkyColor 返回上一次 RenderFrame 使用的背景色
func (s *RenderSystem) SkyColor() color.RGBA {
	return s.sky
}

// RenderFrame 为给定视口尺寸准备一帧
// 没有相机或视口为空时清空上一帧
func (s *RenderSystem) RenderFrame(width, height int) {
	s.triangles = s.triangles[:0]
	if s.disposed || width <= 0 || height <= 0 {
		return
	}
	cams := ecs.GetEntitiesWith1[*components.CameraComponent](s.entityManager)
	if len(cams) == 0 {
		return
	}
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, cams[0])
	env := s.environment()
	s.sky = toRGBA(env.Sky, 1)

	viewProj := ViewProjection(cam)
	eye := cam.Eye()
	vp := viewport{w: float64(width), h: float64(height)}

	clear(s.world)
	for _, id := range ecs.GetEntitiesWith2[*components.TransformComponent, *components.MeshComponent](s.entityManager) {
		mc, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		if !mc.Visible || mc.Mesh == nil || mc.Opacity <= 0 {
			continue
		}
		s.addMesh(mc, s.worldMatrix(id, 0), viewProj, eye, env, vp)
	}

	if s.rainEnabled() {
		projScale := vp.h / (2 * math.Tan(mgl64.DegToRad(cam.FOV)/2))
		for _, id := range ecs.GetEntitiesWith1[*components.RainComponent](s.entityManager) {
			rc, _ := ecs.GetComponent[*components.RainComponent](s.entityManager, id)
			s.addRain(rc, viewProj, eye, projScale, vp)
		}
	}

	slices.SortFunc(s.triangles, func(a, b projectedTriangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
}

// Draw 把准备好的帧画到屏幕上
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.sky)
	if s.disposed || len(s.triangles) == 0 {
		return
	}
	src := s.white()
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}

	s.vertices = s.vertices[:0]
	for _, t := range s.triangles {
		if len(s.vertices)+3 > maxBatchVertices {
			s.flush(screen, src, op)
		}
		for k := 0; k < 3; k++ {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX: t.x[k], DstY: t.y[k],
				SrcX: 1, SrcY: 1,
				ColorR: t.r, ColorG: t.g, ColorB: t.b, ColorA: t.a,
			})
		}
	}
	s.flush(screen, src, op)
}

func (s *RenderSystem) flush(screen, src *ebiten.Image, op *ebiten.DrawTrianglesOptions) {
	if len(s.vertices) == 0 {
		return
	}
	s.indices = s.indices[:0]
	for i := range s.vertices {
		s.indices = append(s.indices, uint16(i))
	}
	screen.DrawTriangles(s.vertices, s.indices, src, op)
	s.vertices = s.vertices[:0]
}

// white 返回 3x3 白色图片中心 1 像素的子图，作为纯色三角形的纹理
func (s *RenderSystem) white() *ebiten.Image {
	if s.whiteImage == nil {
		s.whiteBase = ebiten.NewImage(3, 3)
		s.whiteBase.Fill(color.White)
		s.whiteImage = s.whiteBase.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.whiteImage
}

// Dispose 释放纯色纹理与帧缓冲，之后 Draw 不再绘制；可重复调用
func (s *RenderSystem) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.whiteBase != nil {
		s.whiteBase.Deallocate()
	}
	s.whiteBase = nil
	s.whiteImage = nil
	s.triangles = nil
	s.vertices = nil
	s.indices = nil
	clear(s.world)
}

// IsDisposed 是否已释放
func (s *RenderSystem) IsDisposed() bool {
	return s.disposed
}

func (s *RenderSystem) environment() *components.EnvironmentComponent {
	if ids := ecs.GetEntitiesWith1[*components.EnvironmentComponent](s.entityManager); len(ids) > 0 {
		if env, ok := ecs.GetComponent[*components.EnvironmentComponent](s.entityManager, ids[0]); ok {
			return env
		}
	}
	return &components.EnvironmentComponent{Sky: mgl64.Vec3{1, 1, 1}, AmbientIntensity: 1}
}

// worldMatrix 递归计算世界矩阵，结果在本帧内缓存
// depth 防止父子关系成环时无限递归
func (s *RenderSystem) worldMatrix(id ecs.EntityID, depth int) mgl64.Mat4 {
	if m, ok := s.world[id]; ok {
		return m
	}
	t, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return mgl64.Ident4()
	}
	m := t.LocalMatrix()
	if t.Parent != 0 && t.Parent != id && depth < 16 {
		m = s.worldMatrix(t.Parent, depth+1).Mul4(m)
	}
	s.world[id] = m
	return m
}

type viewport struct{ w, h float64 }

// project 把世界坐标投影到屏幕；返回 false 表示顶点在近裁剪面之后
func (vp viewport) project(viewProj mgl64.Mat4, p mgl64.Vec3) (x, y, w float64, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	w = clip.W()
	if w < minDepth {
		return 0, 0, w, false
	}
	x = (clip.X()/w + 1) / 2 * vp.w
	y = (1 - clip.Y()/w) / 2 * vp.h
	return x, y, w, true
}

func (s *RenderSystem) addMesh(mc *components.MeshComponent, world, viewProj mgl64.Mat4, eye mgl64.Vec3, env *components.EnvironmentComponent, vp viewport) {
	m := mc.Mesh
	for i := 0; i+2 < len(m.Positions); i += 3 {
		var wp [3]mgl64.Vec3
		var tri projectedTriangle
		visible := true
		for k := 0; k < 3; k++ {
			wp[k] = world.Mul4x1(m.Positions[i+k].Vec4(1)).Vec3()
			x, y, _, ok := vp.project(viewProj, wp[k])
			if !ok {
				visible = false
				break
			}
			tri.x[k], tri.y[k] = float32(x), float32(y)
		}
		if !visible || offscreen(tri, vp) {
			continue
		}

		center := wp[0].Add(wp[1]).Add(wp[2]).Mul(1.0 / 3)
		tri.depth = center.Sub(eye).Len()

		albedo := mc.Color
		if len(m.Colors) > i {
			albedo = mulVec(albedo, m.Colors[i])
		}
		c := albedo
		if !mc.Unlit {
			c = shade(albedo, faceNormal(wp, eye, center), env)
		}
		if !mc.NoFog {
			c = applyFog(c, tri.depth, env)
		}
		tri.r, tri.g, tri.b = float32(utils.Clamp01(c.X())), float32(utils.Clamp01(c.Y())), float32(utils.Clamp01(c.Z()))
		tri.a = float32(utils.Clamp01(mc.Opacity))
		s.triangles = append(s.triangles, tri)
	}
}

func (s *RenderSystem) addRain(rc *components.RainComponent, viewProj mgl64.Mat4, eye mgl64.Vec3, projScale float64, vp viewport) {
	if rc.Opacity <= 0 {
		return
	}
	r, g, b := float32(rc.Color.X()), float32(rc.Color.Y()), float32(rc.Color.Z())
	a := float32(utils.Clamp01(rc.Opacity))
	for _, p := range rc.Particles {
		x, y, w, ok := vp.project(viewProj, p)
		if !ok || x < 0 || y < 0 || x > vp.w || y > vp.h {
			continue
		}
		half := math.Max(0.5, rc.Size*projScale/w/2)
		x0, y0 := float32(x-half), float32(y-half)
		x1, y1 := float32(x+half), float32(y+half)
		depth := p.Sub(eye).Len()
		s.triangles = append(s.triangles,
			projectedTriangle{depth: depth, x: [3]float32{x0, x1, x0}, y: [3]float32{y0, y0, y1}, r: r, g: g, b: b, a: a},
			projectedTriangle{depth: depth, x: [3]float32{x1, x1, x0}, y: [3]float32{y0, y1, y1}, r: r, g: g, b: b, a: a},
		)
	}
}

// offscreen 三角形完全位于视口某一侧时返回 true
func offscreen(t projectedTriangle, vp viewport) bool {
	w, h := float32(vp.w), float32(vp.h)
	return (t.x[0] < 0 && t.x[1] < 0 && t.x[2] < 0) ||
		(t.x[0] > w && t.x[1] > w && t.x[2] > w) ||
		(t.y[0] < 0 && t.y[1] < 0 && t.y[2] < 0) ||
		(t.y[0] > h && t.y[1] > h && t.y[2] > h)
}

// faceNormal 返回朝向相机一侧的面法线（双面光照）
func faceNormal(wp [3]mgl64.Vec3, eye, center mgl64.Vec3) mgl64.Vec3 {
	n := wp[1].Sub(wp[0]).Cross(wp[2].Sub(wp[0]))
	if n.Len() < 1e-12 {
		return mgl64.Vec3{0, 1, 0}
	}
	n = n.Normalize()
	if n.Dot(eye.Sub(center)) < 0 {
		n = n.Mul(-1)
	}
	return n
}

// shade 平面着色
func shade(albedo, n mgl64.Vec3, env *components.EnvironmentComponent) mgl64.Vec3 {
	light := mgl64.Vec3{env.AmbientIntensity, env.AmbientIntensity, env.AmbientIntensity}

	hemi := utils.LerpVec3(env.HemisphereGround, env.HemisphereSky, 0.5*n.Y()+0.5)
	light = light.Add(hemi.Mul(env.HemisphereIntensity))

	if diffuse := n.Dot(env.LightDirection); diffuse > 0 {
		light = light.Add(env.LightColor.Mul(diffuse * env.LightIntensity))
	}
	return mulVec(albedo, light.Mul(lightExposure))
}

// applyFog 线性雾
func applyFog(c mgl64.Vec3, depth float64, env *components.EnvironmentComponent) mgl64.Vec3 {
	if env.FogFar <= env.FogNear {
		return c
	}
	f := utils.Clamp01((depth - env.FogNear) / (env.FogFar - env.FogNear))
	return utils.LerpVec3(c, env.Fog, f)
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func toRGBA(c mgl64.Vec3, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(utils.Clamp01(c.X())*a*255 + 0.5),
		G: uint8(utils.Clamp01(c.Y())*a*255 + 0.5),
		B: uint8(utils.Clamp01(c.Z())*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

var _ FrameRenderer = (*RenderSystem)(nil)
