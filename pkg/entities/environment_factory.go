package entities

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/mesh"
	"github.com/gonewx/ascent/pkg/rng"
)

// cloudPuffs 一朵云由 5 个十二面体组成：局部位置与缩放
var cloudPuffs = []struct {
	pos   mgl64.Vec3
	scale float64
}{
	{mgl64.Vec3{0, 0, 0}, 1.5},
	{mgl64.Vec3{1.2, 0.2, 0}, 1.2},
	{mgl64.Vec3{-1.2, 0.1, 0}, 1.3},
	{mgl64.Vec3{0.5, 0.8, 0.5}, 1.0},
	{mgl64.Vec3{-0.5, 0.6, -0.5}, 1.1},
}

// NewGroundEntity 创建山脚的草地圆盘（顶面位于 y=0）
func NewGroundEntity(em *ecs.EntityManager, cfg *config.AscentConfig) ecs.EntityID {
	r := cfg.Scenery.GroundRadius
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(mgl64.Vec3{0, -1, 0}))
	ecs.AddComponent(em, id, components.NewMeshComponent(
		mesh.Cylinder(r, r, 2, 32, 1).ToNonIndexed(), cfg.Palette.MountainGrass.Vec()))
	return id
}

// NewTreeEntities 在山脚外圈随机种树
// 每棵树：方位角 U(0,2π)，半径 U(min,max)，整体缩放 U(minScale,maxScale)
func NewTreeEntities(em *ecs.EntityManager, cfg *config.AscentConfig, src rng.Source) []ecs.EntityID {
	sc := cfg.Scenery
	trunk := mesh.Cylinder(0.15, 0.3, 0.8, 5, 1).ToNonIndexed()
	leaves := mesh.Cone(0.9, 2.2, 5, 1).ToNonIndexed()
	trunkColor := cfg.Palette.TreeTrunk.Vec()
	leafColor := cfg.Palette.TreeDark.Vec()

	ids := make([]ecs.EntityID, 0, sc.TreeCount)
	for i := 0; i < sc.TreeCount; i++ {
		angle := src.Next() * math.Pi * 2
		r := rng.Range(src, sc.TreeMinRadius, sc.TreeMaxRadius)
		s := rng.Range(src, sc.TreeMinScale, sc.TreeMaxScale)

		root := em.CreateEntity()
		t := components.NewTransform(mgl64.Vec3{math.Cos(angle) * r, 0, math.Sin(angle) * r})
		t.Scale = mgl64.Vec3{s, s, s}
		ecs.AddComponent(em, root, t)

		addChildMesh(em, root, trunk, trunkColor, mgl64.Vec3{0, 0.4, 0}, 1)
		addChildMesh(em, root, leaves, leafColor, mgl64.Vec3{0, 1.5, 0}, 1)
		ids = append(ids, root)
	}
	return ids
}

// NewCloudEntity 创建一朵半透明的云
func NewCloudEntity(em *ecs.EntityManager, cfg *config.AscentConfig, src rng.Source, puff *mesh.Mesh) ecs.EntityID {
	pos := mgl64.Vec3{
		rng.Range(src, -25, 25),
		rng.Range(src, 25, 35),
		rng.Range(src, -25, 25),
	}
	root := em.CreateEntity()
	ecs.AddComponent(em, root, components.NewTransform(pos))

	color := cfg.Palette.Cloud.Vec()
	for _, p := range cloudPuffs {
		id := addChildMesh(em, root, puff, color, p.pos, p.scale)
		if mc, ok := ecs.GetComponent[*components.MeshComponent](em, id); ok {
			mc.Opacity = 0.9
		}
	}
	return root
}

// NewSunEntity 创建太阳圆盘（不受光照与雾影响）
func NewSunEntity(em *ecs.EntityManager, cfg *config.AscentConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(cfg.Lighting.Day.SunPosition))
	mc := components.NewMeshComponent(mesh.Sphere(cfg.Scenery.SunRadius, 12, 8).ToNonIndexed(), cfg.Palette.Sun.Vec())
	mc.Unlit = true
	mc.NoFog = true
	ecs.AddComponent(em, id, mc)
	ecs.AddComponent(em, id, &components.SunDiscComponent{})
	return id
}

// NewRainEntity 创建雨滴粒子场
// 粒子初始分布在 [-spread,spread] × [0,ceiling] × [-spread,spread]
func NewRainEntity(em *ecs.EntityManager, cfg *config.AscentConfig, src rng.Source) ecs.EntityID {
	rc := cfg.Rain
	particles := make([]mgl64.Vec3, rc.Count)
	for i := range particles {
		particles[i] = mgl64.Vec3{
			rng.Range(src, -rc.Spread, rc.Spread),
			rng.Range(src, 0, rc.Ceiling),
			rng.Range(src, -rc.Spread, rc.Spread),
		}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.RainComponent{
		Particles: particles,
		Speed:     rc.Speed,
		Floor:     rc.Floor,
		Ceiling:   rc.Ceiling,
		Opacity:   rc.Opacity,
		Size:      rc.Size,
		Color:     rc.Color.Vec(),
	})
	return id
}

// NewEnvironmentEntity 创建保存天空/雾/光照参数的实体（初始为白天）
func NewEnvironmentEntity(em *ecs.EntityManager, cfg *config.AscentConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.EnvironmentComponent{
		Sky:     cfg.Lighting.Day.Sky.Vec(),
		Fog:     cfg.Lighting.Day.Fog.Vec(),
		FogNear: cfg.Lighting.FogNear,
		FogFar:  cfg.Lighting.FogFar,
	})
	ecs.AddComponent(em, id, &components.SunriseComponent{})
	return id
}

// addChildMesh 创建挂在 parent 下的网格子实体
func addChildMesh(em *ecs.EntityManager, parent ecs.EntityID, m *mesh.Mesh, color, pos mgl64.Vec3, scale float64) ecs.EntityID {
	id := em.CreateEntity()
	t := components.NewTransform(pos)
	t.Scale = mgl64.Vec3{scale, scale, scale}
	t.Parent = parent
	ecs.AddComponent(em, id, t)
	ecs.AddComponent(em, id, components.NewMeshComponent(m, color))
	return id
}
