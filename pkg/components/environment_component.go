package components

import "github.com/go-gl/mathgl/mgl64"

// EnvironmentComponent 当前帧的天空、雾与光照参数
// 由日出系统每帧写入，渲染系统只读
type EnvironmentComponent struct {
	Sky mgl64.Vec3
	Fog mgl64.Vec3

	FogNear float64
	FogFar  float64

	// LightDirection 指向光源的单位向量
	LightDirection mgl64.Vec3
	LightColor     mgl64.Vec3
	LightIntensity float64

	HemisphereSky       mgl64.Vec3
	HemisphereGround    mgl64.Vec3
	HemisphereIntensity float64

	AmbientIntensity float64
}

// SunDiscComponent 标记天空中的太阳圆盘
type SunDiscComponent struct{}
