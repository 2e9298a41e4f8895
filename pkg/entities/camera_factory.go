package entities

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
)

// NewCameraEntity 创建轨道相机
// 相机从配置位置出发，注视 lookAt；初始禁用，开始游戏后才响应拖动
func NewCameraEntity(em *ecs.EntityManager, cfg *config.AscentConfig, lookAt mgl64.Vec3, aspect float64) ecs.EntityID {
	cc := cfg.Camera
	cam := &components.CameraComponent{
		Target:    lookAt,
		ZoomScale: 1,
		FOV:       cc.FOV,
		Near:      cc.Near,
		Far:       cc.Far,
		Aspect:    aspect,
	}
	cam.SetFromOffset(cc.Position.Sub(lookAt))

	id := em.CreateEntity()
	ecs.AddComponent(em, id, cam)
	return id
}
