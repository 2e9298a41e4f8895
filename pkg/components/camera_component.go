package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraComponent 透视相机与轨道控制状态
//
// 相机位置由 Target 加球坐标偏移 (Radius, Theta, Phi) 得到；
// 拖动与滚轮产生的增量先累积到 delta 字段，再按阻尼逐帧释放。
type CameraComponent struct {
	// Target 轨道中心
	Target mgl64.Vec3

	// Radius 与中心的距离
	Radius float64

	// Theta 绕 Y 轴的方位角，Phi 与 +Y 轴的夹角
	Theta float64
	Phi   float64

	// 待释放的增量
	DeltaTheta float64
	DeltaPhi   float64
	ZoomScale  float64

	// Enabled 为 false 时不响应拖动/滚轮，也不跟随角色
	Enabled bool

	FOV    float64 // 垂直视角（度）
	Near   float64
	Far    float64
	Aspect float64
}

// Eye 返回相机位置（Y 轴向上的球坐标）
func (c *CameraComponent) Eye() mgl64.Vec3 {
	sinPhi := math.Sin(c.Phi)
	return c.Target.Add(mgl64.Vec3{
		c.Radius * sinPhi * math.Sin(c.Theta),
		c.Radius * math.Cos(c.Phi),
		c.Radius * sinPhi * math.Cos(c.Theta),
	})
}

// SetFromOffset 根据相机相对中心的偏移设置球坐标
func (c *CameraComponent) SetFromOffset(offset mgl64.Vec3) {
	c.Radius = offset.Len()
	if c.Radius == 0 {
		c.Theta, c.Phi = 0, 0
		return
	}
	c.Theta = math.Atan2(offset.X(), offset.Z())
	c.Phi = math.Acos(math.Max(-1, math.Min(1, offset.Y()/c.Radius)))
}
