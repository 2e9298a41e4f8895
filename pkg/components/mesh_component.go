package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/mesh"
)

// MeshComponent 可渲染的三角网格及其材质
type MeshComponent struct {
	// Mesh 局部坐标下的网格；多个实体可以共享同一个网格
	Mesh *mesh.Mesh

	// Color 材质颜色 [0,1]；Mesh.Colors 非空时与顶点色相乘
	Color mgl64.Vec3

	// Opacity 不透明度 [0,1]
	Opacity float64

	// Unlit 为 true 时不参与光照（太阳圆盘）
	Unlit bool

	// NoFog 为 true 时不受雾影响
	NoFog bool

	// Visible 为 false 时跳过渲染
	Visible bool
}

// NewMeshComponent 创建不透明、受光照、可见的网格组件
func NewMeshComponent(m *mesh.Mesh, color mgl64.Vec3) *MeshComponent {
	return &MeshComponent{
		Mesh:    m,
		Color:   color,
		Opacity: 1,
		Visible: true,
	}
}
