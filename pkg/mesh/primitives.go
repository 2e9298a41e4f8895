package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cylinder 生成圆台几何体（radiusTop 为 0 时即圆锥）
//
// 参数：
//   - radiusTop, radiusBottom: 顶部/底部半径
//   - height: 高度，几何中心位于原点
//   - radialSegments: 周向分段数（最少 3）
//   - heightSegments: 高度分段数（最少 1）
//
// 半径为 0 的一端不生成封口，也不生成退化三角形。
func Cylinder(radiusTop, radiusBottom, height float64, radialSegments, heightSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	g := &Geometry{}
	half := height / 2

	rows := make([][]int, 0, heightSegments+1)
	for y := 0; y <= heightSegments; y++ {
		v := float64(y) / float64(heightSegments)
		radius := v*(radiusBottom-radiusTop) + radiusTop
		row := make([]int, 0, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			row = append(row, len(g.Positions))
			g.Positions = append(g.Positions, mgl64.Vec3{
				radius * math.Sin(theta),
				-v*height + half,
				radius * math.Cos(theta),
			})
		}
		rows = append(rows, row)
	}

	for x := 0; x < radialSegments; x++ {
		for y := 0; y < heightSegments; y++ {
			a := rows[y][x]
			b := rows[y+1][x]
			c := rows[y+1][x+1]
			d := rows[y][x+1]
			if radiusTop > 0 || y != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if radiusBottom > 0 || y != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	if radiusTop > 0 {
		g.addCap(radiusTop, half, radialSegments, true)
	}
	if radiusBottom > 0 {
		g.addCap(radiusBottom, -half, radialSegments, false)
	}
	return g
}

// Cone 生成圆锥几何体
func Cone(radius, height float64, radialSegments, heightSegments int) *Geometry {
	return Cylinder(0, radius, height, radialSegments, heightSegments)
}

func (g *Geometry) addCap(radius, y float64, radialSegments int, top bool) {
	centerStart := len(g.Positions)
	for x := 0; x < radialSegments; x++ {
		g.Positions = append(g.Positions, mgl64.Vec3{0, y, 0})
	}
	ringStart := len(g.Positions)
	for x := 0; x <= radialSegments; x++ {
		theta := float64(x) / float64(radialSegments) * 2 * math.Pi
		g.Positions = append(g.Positions, mgl64.Vec3{radius * math.Sin(theta), y, radius * math.Cos(theta)})
	}
	for x := 0; x < radialSegments; x++ {
		c := centerStart + x
		i := ringStart + x
		if top {
			g.Indices = append(g.Indices, i, i+1, c)
		} else {
			g.Indices = append(g.Indices, i+1, i, c)
		}
	}
}

// Box 生成以原点为中心的长方体
func Box(width, height, depth float64) *Geometry {
	w, h, d := width/2, height/2, depth/2
	corners := [8]mgl64.Vec3{
		{-w, -h, -d}, {w, -h, -d}, {w, h, -d}, {-w, h, -d},
		{-w, -h, d}, {w, -h, d}, {w, h, d}, {-w, h, d},
	}
	faces := [6][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	g := &Geometry{}
	for _, f := range faces {
		base := len(g.Positions)
		for _, c := range f {
			g.Positions = append(g.Positions, corners[c])
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Sphere 生成经纬球体
func Sphere(radius float64, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{}
	grid := make([][]int, 0, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]int, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			row = append(row, len(g.Positions))
			g.Positions = append(g.Positions, mgl64.Vec3{
				-radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				radius * math.Cos(v*math.Pi),
				radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
		grid = append(grid, row)
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// Dodecahedron 生成正十二面体（12 个五边形面，共 36 个三角形）
// 用于云团和角色头部的低多边形造型
func Dodecahedron(radius float64) *Geometry {
	t := (1 + math.Sqrt(5)) / 2
	r := 1 / t
	raw := []mgl64.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -t}, {0, -r, t}, {0, r, -t}, {0, r, t},
		{-r, -t, 0}, {-r, t, 0}, {r, -t, 0}, {r, t, 0},
		{-t, 0, -r}, {t, 0, -r}, {-t, 0, r}, {t, 0, r},
	}
	g := &Geometry{Positions: make([]mgl64.Vec3, len(raw))}
	for i, p := range raw {
		g.Positions[i] = p.Normalize().Mul(radius)
	}
	g.Indices = []int{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
	return g
}
