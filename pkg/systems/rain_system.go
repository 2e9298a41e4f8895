package systems

import (
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/utils"
)

// RainSystem 雨滴下落与回收
// 角色越高雨越淡：opacity = base · (1 − clamp(playerY / fadeHeight))
type RainSystem struct {
	entityManager *ecs.EntityManager
	rain          ecs.EntityID
	cfg           config.RainConfig
}

// NewRainSystem 创建雨滴系统
func NewRainSystem(em *ecs.EntityManager, rain ecs.EntityID, cfg config.RainConfig) *RainSystem {
	return &RainSystem{entityManager: em, rain: rain, cfg: cfg}
}

// Update 推进一帧
//
// 参数:
//   - dt: 帧间隔（秒）
//   - playerY: 角色当前高度
func (s *RainSystem) Update(dt, playerY float64) {
	rc, ok := ecs.GetComponent[*components.RainComponent](s.entityManager, s.rain)
	if !ok {
		return
	}
	fall := rc.Speed * dt
	for i := range rc.Particles {
		rc.Particles[i][1] -= fall
		if rc.Particles[i][1] < rc.Floor {
			rc.Particles[i][1] = rc.Ceiling
		}
	}
	rc.Opacity = RainOpacity(s.cfg, playerY)
}

// Opacity 返回当前雨滴透明度（供环境音使用）
func (s *RainSystem) Opacity() float64 {
	rc, ok := ecs.GetComponent[*components.RainComponent](s.entityManager, s.rain)
	if !ok {
		return 0
	}
	return rc.Opacity
}

// RainOpacity 计算给定角色高度下的雨滴透明度
func RainOpacity(cfg config.RainConfig, playerY float64) float64 {
	if cfg.FadeHeight <= 0 {
		return cfg.Opacity
	}
	return cfg.Opacity * (1 - utils.Clamp01(playerY/cfg.FadeHeight))
}
