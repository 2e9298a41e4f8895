package entities

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/mesh"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/terrain"
)

// NewMountainEntity 创建山体实体
// 网格已在世界坐标中（山脚位于 y=0），颜色来自顶点色
func NewMountainEntity(em *ecs.EntityManager, cfg *config.AscentConfig, src rng.Source) ecs.EntityID {
	m := terrain.GenerateMountain(cfg.Mountain, cfg.Palette, src)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(mgl64.Vec3{}))
	ecs.AddComponent(em, id, components.NewMeshComponent(m, mgl64.Vec3{1, 1, 1}))
	return id
}

// NewPlatformEntities 为每个平台创建木板与斜撑
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置
//   - platforms: 平台布局
//
// 返回:
//   - []ecs.EntityID: 每个平台的根实体
func NewPlatformEntities(em *ecs.EntityManager, cfg *config.AscentConfig, platforms []terrain.Platform) []ecs.EntityID {
	pc := cfg.Platform
	board := mesh.Box(pc.Width, pc.Height, pc.Depth).ToNonIndexed()
	support := mesh.Box(0.2, 0.8, 0.2).ToNonIndexed()
	boardColor := cfg.Palette.Platform.Vec()
	supportColor := cfg.Palette.PlatformDark.Vec()

	ids := make([]ecs.EntityID, 0, len(platforms))
	for _, p := range platforms {
		root := em.CreateEntity()
		rootTransform := components.NewTransform(p.Position)
		rootTransform.Rotation = mgl64.Vec3{0, p.Yaw, 0}
		ecs.AddComponent(em, root, rootTransform)

		b := em.CreateEntity()
		bt := components.NewTransform(mgl64.Vec3{})
		bt.Parent = root
		ecs.AddComponent(em, b, bt)
		ecs.AddComponent(em, b, components.NewMeshComponent(board, boardColor))

		s := em.CreateEntity()
		st := components.NewTransform(mgl64.Vec3{-0.5, -0.5, 0})
		st.Rotation = mgl64.Vec3{0, 0, math.Pi / 4}
		st.Parent = root
		ecs.AddComponent(em, s, st)
		ecs.AddComponent(em, s, components.NewMeshComponent(support, supportColor))

		ids = append(ids, root)
	}
	return ids
}

// NewFlagEntity 在山顶平台旁插上旗帜
// 平台列表为空时不创建，返回 false
func NewFlagEntity(em *ecs.EntityManager, cfg *config.AscentConfig, platforms []terrain.Platform) (ecs.EntityID, bool) {
	pos, ok := terrain.FlagPosition(platforms, cfg.Platform, cfg.Scenery.FlagOffset)
	if !ok {
		return 0, false
	}

	root := em.CreateEntity()
	ecs.AddComponent(em, root, components.NewTransform(pos))

	pole := em.CreateEntity()
	pt := components.NewTransform(mgl64.Vec3{0, 1, 0})
	pt.Parent = root
	ecs.AddComponent(em, pole, pt)
	ecs.AddComponent(em, pole, components.NewMeshComponent(
		mesh.Cylinder(0.05, 0.05, 2, 8, 1).ToNonIndexed(), cfg.Palette.FlagPole.Vec()))

	cloth := em.CreateEntity()
	ct := components.NewTransform(mgl64.Vec3{0.4, 1.5, 0})
	ct.Parent = root
	ecs.AddComponent(em, cloth, ct)
	ecs.AddComponent(em, cloth, components.NewMeshComponent(
		mesh.Box(0.8, 0.5, 0.05).ToNonIndexed(), cfg.Palette.Flag.Vec()))

	return root, true
}
