package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/ecs"
)

// TransformComponent 实体在父节点坐标系中的位置、旋转和缩放
//
// Parent 为 0 表示挂在场景根节点下。
// 旋转为 XYZ 顺序的欧拉角（弧度），矩阵为 T · Rx · Ry · Rz · S。
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Parent   ecs.EntityID
}

// NewTransform 创建单位缩放的变换
func NewTransform(position mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		Position: position,
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// LocalMatrix 返回局部变换矩阵
func (t *TransformComponent) LocalMatrix() mgl64.Mat4 {
	m := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.Rotation.X() != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(t.Rotation.X()))
	}
	if t.Rotation.Y() != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(t.Rotation.Y()))
	}
	if t.Rotation.Z() != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
	}
	return m.Mul4(mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// FaceTowards 绕 Y 轴转向，使局部 +Z 指向目标点的水平投影
// 目标与自身重合时保持原朝向
func (t *TransformComponent) FaceTowards(target mgl64.Vec3) {
	dx := target.X() - t.Position.X()
	dz := target.Z() - t.Position.Z()
	if dx*dx+dz*dz < 1e-12 {
		return
	}
	t.Rotation[0] = 0
	t.Rotation[1] = math.Atan2(dx, dz)
	t.Rotation[2] = 0
}
