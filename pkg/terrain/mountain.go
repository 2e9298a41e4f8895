// Package terrain 生成山体网格与螺旋平台布局
//
// 两者都只依赖配置和注入的随机源，不涉及渲染，
// 同一个种子总是得到同一座山。
package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/mesh"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/utils"
)

// GenerateMountain 生成带噪声与高度着色的山体网格
//
// 步骤：
//  1. 以 bottomRadius/height 生成圆锥（几何中心在原点）
//  2. 距底面 baseMargin 以上的顶点加入均匀噪声（底圈保持贴地）
//  3. 展开为非索引网格（平面着色），逐顶点按归一化高度在草地色与雪色之间插值，
//     再乘以 1±jitter 的亮度抖动
//  4. 整体上移 height/2，使山脚位于 y=0
//
// 参数：
//   - mc: 山体参数
//   - palette: 提供草地色与雪色
//   - src: 随机源
//
// 返回：
//   - *mesh.Mesh: 世界坐标下的山体网格，Colors 与 Positions 一一对应
func GenerateMountain(mc config.MountainConfig, palette config.PaletteConfig, src rng.Source) *mesh.Mesh {
	geo := mesh.Cone(mc.BottomRadius, mc.Height, mc.RadialSegments, mc.HeightSegments)

	half := mc.Height / 2
	for i, v := range geo.Positions {
		if v.Y() <= -half+mc.Noise.BaseMargin {
			continue
		}
		geo.Positions[i] = mgl64.Vec3{
			v.X() + rng.Range(src, -mc.Noise.Horizontal, mc.Noise.Horizontal),
			v.Y() + rng.Range(src, -mc.Noise.Vertical, mc.Noise.Vertical),
			v.Z() + rng.Range(src, -mc.Noise.Horizontal, mc.Noise.Horizontal),
		}
	}

	m := geo.ToNonIndexed()
	grass := palette.MountainGrass.Vec()
	snow := palette.MountainSnow.Vec()

	m.Colors = make([]mgl64.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		h := (p.Y() + half) / mc.Height
		f := SnowFactor(h, mc.Snow)
		c := utils.LerpVec3(grass, snow, f)
		m.Colors[i] = c.Mul(rng.Range(src, 1-mc.Snow.Jitter, 1+mc.Snow.Jitter))
	}

	m.Translate(mgl64.Vec3{0, half, 0})
	return m
}

// SnowFactor 返回归一化高度 h 处的积雪比例 [0, 1]
// 高度低于 threshold 时为 0，在 threshold+band 处达到 1
func SnowFactor(h float64, sc config.SnowConfig) float64 {
	if sc.Band <= 0 {
		if h > sc.Threshold {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, (h-sc.Threshold)/sc.Band))
}
