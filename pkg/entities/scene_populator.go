package entities

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/mesh"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/terrain"
)

// SceneEntities 一局游戏中需要被系统直接引用的实体
type SceneEntities struct {
	Platforms   []terrain.Platform
	Mountain    ecs.EntityID
	Player      ecs.EntityID
	Camera      ecs.EntityID
	Environment ecs.EntityID
	Rain        ecs.EntityID
	Sun         ecs.EntityID
	Flag        ecs.EntityID // 平台为空时为 0
}

// PopulateScene 生成山体、平台、装饰物、角色、相机与环境实体
//
// 随机数按固定顺序消耗：山体噪声 → 平台抖动 → 树 → 云 → 雨滴，
// 因此同一个种子总是得到同一个场景。
//
// 参数:
//   - em: 本局的实体管理器
//   - cfg: 场景配置
//   - src: 随机源
//   - aspect: 视口宽高比
//
// 返回:
//   - SceneEntities: 关键实体ID与平台布局
func PopulateScene(em *ecs.EntityManager, cfg *config.AscentConfig, src rng.Source, aspect float64) SceneEntities {
	var s SceneEntities

	s.Mountain = NewMountainEntity(em, cfg, src)
	s.Platforms = terrain.LayoutPlatforms(cfg.Mountain, cfg.Platform, src)
	NewPlatformEntities(em, cfg, s.Platforms)

	NewGroundEntity(em, cfg)
	NewTreeEntities(em, cfg, src)

	s.Player = NewCharacterEntity(em, cfg, s.Platforms)
	if flag, ok := NewFlagEntity(em, cfg, s.Platforms); ok {
		s.Flag = flag
	}

	puff := mesh.Dodecahedron(1).ToNonIndexed()
	for i := 0; i < cfg.Scenery.CloudCount; i++ {
		NewCloudEntity(em, cfg, src, puff)
	}

	s.Rain = NewRainEntity(em, cfg, src)
	s.Sun = NewSunEntity(em, cfg)
	s.Environment = NewEnvironmentEntity(em, cfg)

	lookAt := mgl64.Vec3{}
	if len(s.Platforms) > 0 {
		lookAt = s.Platforms[0].Position.Add(mgl64.Vec3{0, cfg.Camera.FollowOffset, 0})
	}
	s.Camera = NewCameraEntity(em, cfg, lookAt, aspect)

	log.Printf("[Entities] 场景生成完成: %d 个平台, %d 个实体", len(s.Platforms), em.EntityCount())
	return s
}
