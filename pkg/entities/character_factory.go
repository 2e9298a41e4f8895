package entities

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/mesh"
	"github.com/gonewx/ascent/pkg/terrain"
)

// NewCharacterEntity 创建登山角色
//
// 根实体携带 TransformComponent、PlayerComponent、CharacterComponent，
// 躯干、头、四肢作为子实体。角色站在第 0 个平台上并面向山体中轴。
// 平台列表为空时角色停在原点，PlayerComponent.Stands 为空。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 场景配置
//   - platforms: 平台布局
//
// 返回:
//   - ecs.EntityID: 角色根实体ID
func NewCharacterEntity(em *ecs.EntityManager, cfg *config.AscentConfig, platforms []terrain.Platform) ecs.EntityID {
	stands := make([]mgl64.Vec3, len(platforms))
	for i := range platforms {
		stands[i], _ = terrain.StandPosition(platforms, i, cfg.Platform)
	}

	root := em.CreateEntity()
	transform := components.NewTransform(mgl64.Vec3{})
	if len(stands) > 0 {
		transform.Position = stands[0]
		transform.FaceTowards(mgl64.Vec3{0, stands[0].Y(), 0})
	}
	ecs.AddComponent(em, root, transform)

	ecs.AddComponent(em, root, &components.PlayerComponent{
		Stands:       stands,
		Position:     transform.Position,
		Target:       transform.Position,
		MoveDuration: cfg.Player.MoveDuration,
		Direction:    components.DirectionUp,
	})

	shirt := cfg.Palette.Shirt.Vec()
	skin := cfg.Palette.Skin.Vec()
	pants := cfg.Palette.Pants.Vec()
	leg := mesh.Box(0.12, 0.5, 0.12).ToNonIndexed()
	arm := mesh.Box(0.1, 0.4, 0.1).ToNonIndexed()

	part := func(m *mesh.Mesh, color, pos mgl64.Vec3, rotZ float64) ecs.EntityID {
		id := em.CreateEntity()
		t := components.NewTransform(pos)
		t.Rotation = mgl64.Vec3{0, 0, rotZ}
		t.Parent = root
		ecs.AddComponent(em, id, t)
		ecs.AddComponent(em, id, components.NewMeshComponent(m, color))
		return id
	}

	ecs.AddComponent(em, root, &components.CharacterComponent{
		Torso:    part(mesh.Box(0.4, 0.5, 0.25).ToNonIndexed(), shirt, mgl64.Vec3{0, cfg.Player.TorsoHeight, 0}, 0),
		Head:     part(mesh.Dodecahedron(0.2).ToNonIndexed(), skin, mgl64.Vec3{0, 1.15, 0}, 0),
		LeftLeg:  part(leg, pants, mgl64.Vec3{-0.1, 0.25, 0}, 0),
		RightLeg: part(leg, pants, mgl64.Vec3{0.1, 0.25, 0}, 0),
		LeftArm:  part(arm, skin, mgl64.Vec3{-0.3, 0.7, 0}, 0.2),
		RightArm: part(arm, skin, mgl64.Vec3{0.3, 0.7, 0}, -0.2),
	})

	return root
}
