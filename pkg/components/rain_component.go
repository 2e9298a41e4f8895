package components

import "github.com/go-gl/mathgl/mgl64"

// RainComponent 雨滴粒子场
// 粒子在 Floor 以下时回到 Ceiling，X/Z 保持不变
type RainComponent struct {
	Particles []mgl64.Vec3

	Speed   float64
	Floor   float64
	Ceiling float64

	// Opacity 当前不透明度，随角色高度衰减
	Opacity float64

	Size  float64
	Color mgl64.Vec3
}
