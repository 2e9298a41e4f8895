package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/rng"
)

// Platform 螺旋路径上的一个可站立平台
type Platform struct {
	// Position 平台中心（世界坐标）
	Position mgl64.Vec3

	// Yaw 绕 Y 轴的朝向，平台长边沿螺旋切线方向
	Yaw float64
}

// LayoutPlatforms 沿山体螺旋向上摆放平台
//
// total = floor(turns * platformsPerTurn)，生成 total+1 个平台（含山脚起点）。
// 第 i 个平台的参数 t = i/total：
//   - 角度 = t·turns·2π + U(-angleJitter, angleJitter)
//   - 半径 = lerp(bottomRadius, topRadius, t) + U(-inwardBias, 0)，向内偏移保证贴合山体
//   - 高度 = height·t + platformHeight/2 + U(-heightJitter, heightJitter)
//
// total 为 0 时只返回山脚一个平台（t 视为 0）。
//
// 参数：
//   - mc: 山体参数
//   - pc: 平台参数
//   - src: 随机源
//
// 返回：
//   - []Platform: 按攀登顺序排列，索引 0 为山脚，最后一个为山顶
func LayoutPlatforms(mc config.MountainConfig, pc config.PlatformConfig, src rng.Source) []Platform {
	total := int(math.Floor(mc.Turns * mc.PlatformsPerTurn))
	if total < 0 {
		total = 0
	}

	platforms := make([]Platform, 0, total+1)
	for i := 0; i <= total; i++ {
		t := 0.0
		if total > 0 {
			t = float64(i) / float64(total)
		}

		angle := t*mc.Turns*2*math.Pi + rng.Range(src, -pc.AngleJitter, pc.AngleJitter)

		radius := mc.BottomRadius*(1-t) + mc.TopRadius*t
		radius += rng.Range(src, -pc.InwardBias, 0)

		y := mc.Height*t + pc.Height/2
		y += rng.Range(src, -pc.HeightJitter, pc.HeightJitter)

		platforms = append(platforms, Platform{
			Position: mgl64.Vec3{math.Cos(angle) * radius, y, math.Sin(angle) * radius},
			Yaw:      angle + math.Pi/2,
		})
	}
	return platforms
}

// Positions 提取平台中心坐标
func Positions(platforms []Platform) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(platforms))
	for i, p := range platforms {
		out[i] = p.Position
	}
	return out
}

// FlagPosition 计算山顶旗帜的位置
// 旗帜立在最后一个平台旁边（X 方向偏移 flagOffset），而不是平台正中
//
// 返回：
//   - mgl64.Vec3: 旗杆底部位置
//   - bool: 平台列表为空时返回 false
func FlagPosition(platforms []Platform, pc config.PlatformConfig, flagOffset float64) (mgl64.Vec3, bool) {
	if len(platforms) == 0 {
		return mgl64.Vec3{}, false
	}
	last := platforms[len(platforms)-1].Position
	return last.Add(mgl64.Vec3{flagOffset, pc.Height / 2, 0}), true
}

// StandPosition 返回站在第 index 个平台上时角色的位置（平台顶面中心）
// 索引越界时钳制到 [0, len-1]；平台列表为空时返回 false
func StandPosition(platforms []Platform, index int, pc config.PlatformConfig) (mgl64.Vec3, bool) {
	if len(platforms) == 0 {
		return mgl64.Vec3{}, false
	}
	index = max(0, min(index, len(platforms)-1))
	return platforms[index].Position.Add(mgl64.Vec3{0, pc.Height / 2, 0}), true
}
