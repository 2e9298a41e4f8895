package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/utils"
)

// Lighting 某一日出进度下的天空与光照
type Lighting struct {
	Sky                 mgl64.Vec3
	Fog                 mgl64.Vec3
	SunPosition         mgl64.Vec3
	LightPosition       mgl64.Vec3
	SunColor            mgl64.Vec3
	SunIntensity        float64
	HemisphereSky       mgl64.Vec3
	HemisphereGround    mgl64.Vec3
	HemisphereIntensity float64
}

// ComputeLighting 在白天与日出两个预设之间按进度线性插值
// progress 会被限制在 [0, 1]；相同输入总是得到相同输出
func ComputeLighting(progress float64, cfg config.LightingConfig) Lighting {
	t := utils.Clamp01(progress)
	day, rise := cfg.Day, cfg.Sunrise
	return Lighting{
		Sky:                 utils.LerpVec3(day.Sky.Vec(), rise.Sky.Vec(), t),
		Fog:                 utils.LerpVec3(day.Fog.Vec(), rise.Fog.Vec(), t),
		SunPosition:         utils.LerpVec3(day.SunPosition, rise.SunPosition, t),
		LightPosition:       utils.LerpVec3(day.LightPosition, rise.LightPosition, t),
		SunColor:            utils.LerpVec3(day.SunColor.Vec(), rise.SunColor.Vec(), t),
		SunIntensity:        utils.Lerp(day.SunIntensity, rise.SunIntensity, t),
		HemisphereSky:       utils.LerpVec3(day.HemisphereSky.Vec(), rise.HemisphereSky.Vec(), t),
		HemisphereGround:    utils.LerpVec3(day.HemisphereGround.Vec(), rise.HemisphereGround.Vec(), t),
		HemisphereIntensity: utils.Lerp(day.HemisphereIntensity, rise.HemisphereIntensity, t),
	}
}

// SunriseZoneStart 返回日出区第一个平台的索引（不小于 0）
func SunriseZoneStart(platformCount, zone int) int {
	return max(0, platformCount-zone)
}

// AdvanceSunrise 根据角色所在平台推进一次日出状态
//
// 在日出区内：进度 = min(1, (index-start+1)/(N-start))；
// 离开日出区且仍处于激活状态：每次调用衰减 decayStep，降到 0 时取消激活。
func AdvanceSunrise(s *components.SunriseComponent, index, platformCount int, cfg config.LightingConfig) {
	if platformCount <= 0 {
		return
	}
	start := SunriseZoneStart(platformCount, cfg.SunriseZone)
	if index >= start {
		s.Active = true
		s.Progress = math.Min(1, float64(index-start+1)/float64(platformCount-start))
		return
	}
	if s.Active {
		s.Progress = math.Max(0, s.Progress-cfg.DecayStep)
		if s.Progress == 0 {
			s.Active = false
		}
	}
}

// SunriseSystem 每帧推进日出状态并把插值结果写入环境实体和太阳圆盘
// 登顶后状态冻结，但画面仍按冻结的进度渲染
type SunriseSystem struct {
	entityManager *ecs.EntityManager
	player        ecs.EntityID
	environment   ecs.EntityID
	sun           ecs.EntityID
	cfg           config.LightingConfig
}

// NewSunriseSystem 创建日出系统
func NewSunriseSystem(em *ecs.EntityManager, player, environment, sun ecs.EntityID, cfg config.LightingConfig) *SunriseSystem {
	return &SunriseSystem{
		entityManager: em,
		player:        player,
		environment:   environment,
		sun:           sun,
		cfg:           cfg,
	}
}

// Sunrise 返回日出状态组件；环境实体不存在时返回 nil
func (s *SunriseSystem) Sunrise() *components.SunriseComponent {
	sr, ok := ecs.GetComponent[*components.SunriseComponent](s.entityManager, s.environment)
	if !ok {
		return nil
	}
	return sr
}

// Update 推进一帧
func (s *SunriseSystem) Update() {
	sr := s.Sunrise()
	if sr == nil {
		return
	}
	if p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player); ok && !p.HasWon {
		AdvanceSunrise(sr, p.CurrentIndex, len(p.Stands), s.cfg)
	}
	s.apply(ComputeLighting(sr.Progress, s.cfg))
}

func (s *SunriseSystem) apply(l Lighting) {
	if env, ok := ecs.GetComponent[*components.EnvironmentComponent](s.entityManager, s.environment); ok {
		env.Sky = l.Sky
		env.Fog = l.Fog
		env.FogNear = s.cfg.FogNear
		env.FogFar = s.cfg.FogFar
		if l.LightPosition.Len() > 0 {
			env.LightDirection = l.LightPosition.Normalize()
		}
		env.LightColor = l.SunColor
		env.LightIntensity = l.SunIntensity
		env.HemisphereSky = l.HemisphereSky
		env.HemisphereGround = l.HemisphereGround
		env.HemisphereIntensity = l.HemisphereIntensity
		env.AmbientIntensity = s.cfg.AmbientIntensity
	}
	if t, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.sun); ok {
		t.Position = l.SunPosition
	}
}
