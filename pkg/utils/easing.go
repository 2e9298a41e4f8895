package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 插值与缓动函数
//
// 角色移动、日出过渡、相机跟随、浮层淡入淡出都建立在这几个函数之上。
// 缓动函数接受进度 t ∈ [0, 1]，返回值 ∈ [0, 1]。

// Lerp 线性插值
// t=0 精确返回 a，t=1 精确返回 b（t 不做钳制）
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// LerpVec3 向量线性插值
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// Clamp01 将 v 钳制到 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// SmoothStep 在 [edge0, edge1] 之间做 Hermite 平滑过渡
// 公式：x = clamp((v-edge0)/(edge1-edge0))，f = x²(3-2x)
func SmoothStep(edge0, edge1, v float64) float64 {
	if edge1 == edge0 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	x := Clamp01((v - edge0) / (edge1 - edge0))
	return x * x * (3 - 2*x)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutQuad 二次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
