// Package mesh 提供场景中使用的三角网格与基础几何体
//
// Geometry 是带索引的几何体，生成后可以直接扰动共享顶点（地形噪声），
// 再通过 ToNonIndexed 展开成 Mesh，供平面着色渲染使用。
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry 带索引的几何体
type Geometry struct {
	Positions []mgl64.Vec3
	Indices   []int
}

// Mesh 展开后的三角网格
// Positions 每 3 个顶点构成一个三角形；Colors 为空表示使用材质颜色
type Mesh struct {
	Positions []mgl64.Vec3
	Colors    []mgl64.Vec3
}

// ToNonIndexed 按索引展开顶点，每个三角形拥有独立的三个顶点
func (g *Geometry) ToNonIndexed() *Mesh {
	m := &Mesh{Positions: make([]mgl64.Vec3, 0, len(g.Indices))}
	for _, idx := range g.Indices {
		if idx < 0 || idx >= len(g.Positions) {
			continue
		}
		m.Positions = append(m.Positions, g.Positions[idx])
	}
	// 丢弃末尾不完整的三角形
	m.Positions = m.Positions[:len(m.Positions)-len(m.Positions)%3]
	return m
}

// TriangleCount 返回三角形数量
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions) / 3
}

// HeightRange 返回网格在 Y 轴上的最小值和最大值
// 空网格返回 (0, 0)
func (m *Mesh) HeightRange() (minY, maxY float64) {
	if m == nil || len(m.Positions) == 0 {
		return 0, 0
	}
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, p := range m.Positions {
		minY = math.Min(minY, p.Y())
		maxY = math.Max(maxY, p.Y())
	}
	return minY, maxY
}

// Translate 平移所有顶点
func (m *Mesh) Translate(offset mgl64.Vec3) {
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Add(offset)
	}
}

// FaceNormal 计算三角形的单位法线（退化三角形返回零向量）
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}
